package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/adapter/fs"
	"lexis/internal/adapter/nlp"
	"lexis/internal/domain"
	"lexis/internal/usecase"
)

type run struct {
	backend string
	report  domain.AnalysisReport
	avg     time.Duration
}

func main() {
	file := flag.String("file", "", "Text file to analyze")
	word := flag.String("word", "", "Target word for the context report")
	runs := flag.Int("runs", 3, "Analyses per backend")
	flag.Parse()

	if *file == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -file essay.txt [-word bank] [-runs 3]")
		fmt.Println("\nCompares the NLP backends on one text:")
		fmt.Println("  1. Analysis time per backend")
		fmt.Println("  2. Agreement of token counts and Zipf fit")
		fmt.Println("  3. Overlap of dominant topics")
		os.Exit(1)
	}
	if *runs < 1 {
		*runs = 1
	}

	text, err := fs.NewTextReader().ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("NLP BACKEND BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("File: %s (%d bytes, %d runs per backend)\n\n", *file, len(text), *runs)

	var results []run
	for _, name := range []string{nlp.ProseName, analyzer.BasicName} {
		backend, err := nlp.New(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Backend %s not available: %v\n", name, err)
			continue
		}
		uc := usecase.NewAnalyzeUseCase(backend)

		var report domain.AnalysisReport
		start := time.Now()
		for i := 0; i < *runs; i++ {
			report, err = uc.AnalyzeCombined(context.Background(), text, *word)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Analysis with %s failed: %v\n", name, err)
				os.Exit(1)
			}
		}
		avg := time.Since(start) / time.Duration(*runs)
		results = append(results, run{backend: name, report: report, avg: avg})

		f := report.Frequency
		fmt.Printf("%-6s  %10s  words=%-7d unique=%-6d zipf=%.4f  %s\n",
			name, avg.Round(time.Microsecond), f.TotalWords, f.UniqueWords, f.Zipf.Correlation, report.Insights.TextComplexity)
		if w := report.Context.Word; w != nil && w.Found {
			fmt.Printf("        %s: %d contexts, pos=%s, class=%s, usage=%s\n",
				w.Word, w.Frequency, w.PartOfSpeech, w.WordClass, w.InferredMeaning.PrimaryUsage)
		}
	}

	if len(results) < 2 {
		return
	}

	a, b := results[0].report, results[1].report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("AGREEMENT:\n")
	fmt.Printf("  Token count difference: %d\n", a.Frequency.TotalWords-b.Frequency.TotalWords)
	fmt.Printf("  Zipf correlation delta: %.4f\n", a.Frequency.Zipf.Correlation-b.Frequency.Zipf.Correlation)
	fmt.Printf("  Same complexity label:  %v\n", a.Insights.TextComplexity == b.Insights.TextComplexity)

	overlap := topicOverlap(a.Insights.DominantTopics, b.Insights.DominantTopics)
	fmt.Printf("  Topic overlap:          %.0f%%\n", overlap*100)

	if overlap > 0.8 {
		fmt.Println("  Status: GOOD - backends agree on the vocabulary")
	} else if overlap > 0.5 {
		fmt.Println("  Status: OK - backends mostly agree")
	} else {
		fmt.Println("  Status: POOR - tokenization differs noticeably")
	}
}

func topicOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	set := make(map[string]struct{}, len(a))
	for _, w := range a {
		set[w] = struct{}{}
	}
	shared := 0
	for _, w := range b {
		if _, ok := set[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(a), len(b)))
}

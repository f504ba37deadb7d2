package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"lexis/internal/adapter/zipf"
	"lexis/internal/domain"
	"lexis/internal/usecase"
)

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// render writes v in the configured format, calling text for "text".
func render(w io.Writer, v any, text func(io.Writer)) error {
	f := strings.ToLower(cfg.Output.Format)
	if f == "" || f == "text" {
		text(w)
		return nil
	}
	return writeStructured(w, v, f)
}

// exportFormat picks JSON or YAML from the file extension.
func exportFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("cannot export to %s: use a .json, .yaml or .yml file", path)
}

// export writes v to path as JSON or YAML.
func export(path string, v any) error {
	f, err := exportFormat(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeStructured(file, v, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	logger.Info("report exported", "path", path, "format", f)
	return nil
}

func printFrequency(w io.Writer, fa domain.FrequencyAnalysis) {
	fmt.Fprintf(w, "Total words:  %d\n", fa.TotalWords)
	fmt.Fprintf(w, "Unique words: %d\n", fa.UniqueWords)

	z := fa.Zipf
	verdict := "does not follow"
	if z.IsZipfian {
		verdict = "follows"
	}
	fmt.Fprintf(w, "Zipf correlation: %.4f (%s Zipf's law)\n", z.Correlation, verdict)
	fmt.Fprintf(w, "Rank-1 frequency: %d, average top-%d frequency: %.2f\n",
		z.Distribution.Rank1Frequency, zipf.TopWords, z.Distribution.AvgFrequency)

	if len(fa.RankedWords) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%5s  %-20s %7s %10s\n", "RANK", "WORD", "COUNT", "EXPECTED")
	for _, rw := range fa.RankedWords {
		expected := ""
		if rw.Rank <= len(z.Distribution.TheoreticalVsActual) {
			expected = fmt.Sprintf("%.2f", z.Distribution.TheoreticalVsActual[rw.Rank-1].Expected)
		}
		fmt.Fprintf(w, "%5d  %-20s %7d %10s\n", rw.Rank, rw.Word, rw.Count, expected)
	}
}

func printUsage(w io.Writer, u domain.Usage) {
	fmt.Fprintf(w, "%s (confidence %.2f over %d contexts)", u.PrimaryUsage, u.Confidence, u.ContextCount)
}

func printWordReport(w io.Writer, r *domain.WordContextReport) {
	if !r.Found {
		fmt.Fprintln(w, r.Message)
		return
	}
	fmt.Fprintf(w, "Word:           %s\n", r.Word)
	fmt.Fprintf(w, "Frequency:      %d sentences\n", r.Frequency)
	fmt.Fprintf(w, "Part of speech: %s\n", r.PartOfSpeech)
	fmt.Fprintf(w, "Word class:     %s\n", r.WordClass)
	fmt.Fprint(w, "Usage:          ")
	printUsage(w, r.InferredMeaning)
	fmt.Fprintln(w)

	if len(r.SurroundingWords) > 0 {
		parts := make([]string, 0, len(r.SurroundingWords))
		for _, wc := range r.SurroundingWords {
			parts = append(parts, fmt.Sprintf("%s (%d)", wc.Word, wc.Count))
		}
		fmt.Fprintf(w, "Neighbors:      %s\n", strings.Join(parts, ", "))
	}

	fmt.Fprintln(w, "\nContexts:")
	for i, c := range r.Contexts {
		fmt.Fprintf(w, "  %d. %s\n", i+1, c)
	}
}

func printCorpus(w io.Writer, c *domain.CorpusContext) {
	fmt.Fprintf(w, "Sentences: %d, average length %.1f words, %d significant words\n",
		c.TextSummary.TotalSentences, c.TextSummary.AvgSentenceLength, c.TotalUniqueWords)
	if len(c.SignificantWords) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%-20s %7s %9s  %s\n", "WORD", "COUNT", "CONTEXTS", "USAGE")
	for _, s := range c.SignificantWords {
		fmt.Fprintf(w, "%-20s %7d %9d  ", s.Word, s.Frequency, s.ContextsCount)
		printUsage(w, s.InferredMeaning)
		fmt.Fprintln(w)
	}
}

func printContext(w io.Writer, ca domain.ContextAnalysis) {
	if ca.Word != nil {
		printWordReport(w, ca.Word)
		return
	}
	if ca.Corpus != nil {
		printCorpus(w, ca.Corpus)
	}
}

func printInsights(w io.Writer, in domain.Insights) {
	fmt.Fprintf(w, "Text complexity:     %s\n", in.TextComplexity)
	fmt.Fprintf(w, "Vocabulary richness: %.3f\n", in.VocabularyRichness)
	fmt.Fprintf(w, "Dominant topics:     %s\n", strings.Join(in.DominantTopics, ", "))
	if len(in.RecommendedFocusWords) > 0 {
		fmt.Fprintf(w, "Focus words:         %s\n", strings.Join(in.RecommendedFocusWords, ", "))
	}
	for _, f := range in.WordFamilies {
		fmt.Fprintf(w, "Family %-12s %s (%d)\n", f.Stem+":", strings.Join(f.Words, ", "), f.Count)
	}
}

func printReport(w io.Writer, r domain.AnalysisReport) {
	fmt.Fprintln(w, "== Frequency ==")
	printFrequency(w, r.Frequency)
	fmt.Fprintln(w, "\n== Context ==")
	printContext(w, r.Context)
	fmt.Fprintln(w, "\n== Insights ==")
	printInsights(w, r.Insights)
}

func printRank(w io.Writer, r domain.WordRank) {
	if !r.Found {
		fmt.Fprintf(w, "Word '%s' not found in text\n", r.Word)
		return
	}
	fmt.Fprintf(w, "%s: rank %d (top %.1f%%)\n", r.Word, r.Rank, r.Percentile)
}

func printDocuments(w io.Writer, docs []domain.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "Library is empty.")
		return
	}
	fmt.Fprintf(w, "%-8s  %-30s %8s  %s\n", "ID", "TITLE", "WORDS", "ADDED")
	for _, d := range docs {
		fmt.Fprintf(w, "%-8s  %-30s %8d  %s\n", shortID(d.ID), d.Title, d.Words, d.AddedAt.Format("2006-01-02 15:04"))
	}
}

func printBatch(w io.Writer, result *usecase.BatchResult) {
	fmt.Fprintf(w, "%-40s %7s %8s  %-24s %s\n", "FILE", "WORDS", "ZIPF", "COMPLEXITY", "TOP WORDS")
	for _, item := range result.Items {
		name := displayPath(item.Path)
		if item.Error != "" {
			fmt.Fprintf(w, "%-40s  error: %s\n", name, item.Error)
			continue
		}
		r := item.Report
		top := r.Insights.DominantTopics
		if len(top) > 3 {
			top = top[:3]
		}
		fmt.Fprintf(w, "%-40s %7d %8.4f  %-24s %s\n",
			name, item.Words, r.Frequency.Zipf.Correlation, r.Insights.TextComplexity, strings.Join(top, ", "))
	}
	fmt.Fprintf(w, "\nAnalyzed: %d, failed: %d\n", result.Analyzed, result.Failed)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func displayPath(path string) string {
	if rel, err := filepath.Rel(rootDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

package usecase

import (
	"context"
	"strings"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/adapter/wordctx"
	"lexis/internal/adapter/zipf"
	"lexis/internal/domain"
	"lexis/internal/port"
)

const (
	// ReportLimit truncates the frequency table and ranked list in reports.
	ReportLimit = 50
	// SignificantLimit is the number of words summarized in corpus mode.
	SignificantLimit = 20
	// DominantTopics is the number of top-ranked words treated as topics.
	DominantTopics = 10
	// FocusWords caps the recommended focus list taken from ranks 11 to 50.
	FocusWords = 10
)

// AnalyzeUseCase runs frequency and context analysis over a single text.
// It keeps no state between calls and is safe for concurrent use as long as
// the NLP backend is.
type AnalyzeUseCase struct {
	normalizer *analyzer.Normalizer
}

var _ port.Analyzer = (*AnalyzeUseCase)(nil)

// NewAnalyzeUseCase creates an analyze use case over the given NLP backend.
func NewAnalyzeUseCase(nlp port.NLP) *AnalyzeUseCase {
	return &AnalyzeUseCase{normalizer: analyzer.NewNormalizer(nlp)}
}

// Backend names the NLP backend in use.
func (u *AnalyzeUseCase) Backend() string {
	return u.normalizer.NLP().Name()
}

// frequencyRun keeps the full ranked list next to the truncated analysis.
type frequencyRun struct {
	analysis domain.FrequencyAnalysis
	ranked   []domain.RankedWord
}

// AnalyzeFrequency counts cleaned tokens, ranks them and fits Zipf's law.
func (u *AnalyzeUseCase) AnalyzeFrequency(ctx context.Context, text string) (domain.FrequencyAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.FrequencyAnalysis{}, err
	}
	run, err := u.frequency(text)
	if err != nil {
		return domain.FrequencyAnalysis{}, err
	}
	return run.analysis, nil
}

func (u *AnalyzeUseCase) frequency(text string) (frequencyRun, error) {
	tokens, err := u.normalizer.CleanTokens(text)
	if err != nil {
		return frequencyRun{}, err
	}

	table := zipf.Count(tokens)
	ranked := zipf.Rank(table)

	return frequencyRun{
		analysis: domain.FrequencyAnalysis{
			TotalWords:     table.Total(),
			UniqueWords:    table.Len(),
			TopFrequencies: zipf.Top(ranked, ReportLimit),
			Zipf:           zipf.Metrics(ranked),
			RankedWords:    zipf.Head(ranked, ReportLimit),
		},
		ranked: ranked,
	}, nil
}

// Lookup returns the rank and percentile of word among the cleaned tokens of text.
func (u *AnalyzeUseCase) Lookup(ctx context.Context, text, word string) (domain.WordRank, error) {
	if err := ctx.Err(); err != nil {
		return domain.WordRank{}, err
	}
	run, err := u.frequency(text)
	if err != nil {
		return domain.WordRank{}, err
	}

	word = strings.ToLower(strings.TrimSpace(word))
	rank, pct, ok := zipf.Lookup(run.ranked, word)
	return domain.WordRank{Word: word, Found: ok, Rank: rank, Percentile: pct}, nil
}

// AnalyzeContext reports on target when given, or summarizes the most
// frequent significant words when target is empty.
func (u *AnalyzeUseCase) AnalyzeContext(ctx context.Context, text, target string) (domain.ContextAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContextAnalysis{}, err
	}

	sentences, err := u.normalizer.Sentences(text)
	if err != nil {
		return domain.ContextAnalysis{}, err
	}
	idx, err := wordctx.BuildIndex(u.normalizer, sentences)
	if err != nil {
		return domain.ContextAnalysis{}, err
	}

	target = strings.ToLower(strings.TrimSpace(target))
	if target != "" {
		report, err := wordctx.Describe(u.normalizer, target, idx.Contexts(target))
		if err != nil {
			return domain.ContextAnalysis{}, err
		}
		return domain.ContextAnalysis{Target: target, Word: &report}, nil
	}

	corpus, err := u.corpus(text, sentences, idx)
	if err != nil {
		return domain.ContextAnalysis{}, err
	}
	return domain.ContextAnalysis{Corpus: corpus}, nil
}

func (u *AnalyzeUseCase) corpus(text string, sentences []string, idx *wordctx.Index) (*domain.CorpusContext, error) {
	table := idx.Frequencies()
	ranked := zipf.Rank(table)
	if len(ranked) > SignificantLimit {
		ranked = ranked[:SignificantLimit]
	}

	summaries := make([]domain.WordSummary, 0, len(ranked))
	for _, rw := range ranked {
		contexts := idx.Contexts(rw.Word)
		usage, err := wordctx.InferUsage(u.normalizer, contexts)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, domain.WordSummary{
			Word:            rw.Word,
			Frequency:       rw.Count,
			ContextsCount:   len(contexts),
			InferredMeaning: usage,
		})
	}

	summary := domain.TextSummary{TotalSentences: len(sentences)}
	if len(sentences) > 0 {
		summary.AvgSentenceLength = float64(len(strings.Fields(text))) / float64(len(sentences))
	}

	return &domain.CorpusContext{
		TotalUniqueWords: table.Len(),
		SignificantWords: summaries,
		TextSummary:      summary,
	}, nil
}

// AnalyzeCombined runs both analyses and derives the combined insights.
func (u *AnalyzeUseCase) AnalyzeCombined(ctx context.Context, text, target string) (domain.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.AnalysisReport{}, err
	}

	run, err := u.frequency(text)
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	contextual, err := u.AnalyzeContext(ctx, text, target)
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	return domain.AnalysisReport{
		Frequency: run.analysis,
		Context:   contextual,
		Insights:  Insights(run.analysis, run.ranked),
	}, nil
}

// Insights derives complexity, vocabulary richness, topics and focus words
// from a frequency analysis and its full ranked list.
func Insights(freq domain.FrequencyAnalysis, ranked []domain.RankedWord) domain.Insights {
	head := zipf.Head(ranked, ReportLimit)

	topics := make([]string, 0, DominantTopics)
	for _, rw := range zipf.Head(head, DominantTopics) {
		topics = append(topics, rw.Word)
	}

	focus := make([]string, 0, FocusWords)
	if len(head) > DominantTopics {
		for _, rw := range head[DominantTopics:] {
			if len(focus) == FocusWords {
				break
			}
			focus = append(focus, rw.Word)
		}
	}

	return domain.Insights{
		TextComplexity:        zipf.Classify(freq.Zipf.Correlation),
		VocabularyRichness:    float64(freq.UniqueWords) / float64(max(freq.TotalWords, 1)),
		DominantTopics:        topics,
		RecommendedFocusWords: focus,
		WordFamilies:          analyzer.WordFamilies(head),
	}
}

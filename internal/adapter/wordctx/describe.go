package wordctx

import (
	"fmt"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/domain"
)

// MaxExamples caps the example sentences in a word report.
const MaxExamples = 5

// Describe builds the full context report for word. A word without contexts
// is reported as not found.
func Describe(n *analyzer.Normalizer, word string, contexts []string) (domain.WordContextReport, error) {
	if len(contexts) == 0 {
		return domain.WordContextReport{
			Word:            word,
			Found:           false,
			Message:         fmt.Sprintf("Word '%s' not found in text", word),
			InferredMeaning: domain.Usage{PrimaryUsage: UsageUnknown},
		}, nil
	}

	pos, err := PartOfSpeech(n.NLP(), word)
	if err != nil {
		return domain.WordContextReport{}, err
	}

	neighbors, err := Neighbors(n, word, contexts)
	if err != nil {
		return domain.WordContextReport{}, err
	}

	usage, err := InferUsage(n, contexts)
	if err != nil {
		return domain.WordContextReport{}, err
	}

	class, err := WordClass(n.NLP(), word, contexts)
	if err != nil {
		return domain.WordContextReport{}, err
	}

	examples := contexts
	if len(examples) > MaxExamples {
		examples = examples[:MaxExamples]
	}

	return domain.WordContextReport{
		Word:             word,
		Found:            true,
		Frequency:        len(contexts),
		PartOfSpeech:     pos,
		Contexts:         append([]string(nil), examples...),
		SurroundingWords: neighbors,
		InferredMeaning:  usage,
		WordClass:        class,
	}, nil
}

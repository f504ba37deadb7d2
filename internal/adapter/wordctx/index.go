package wordctx

import (
	"lexis/internal/adapter/analyzer"
	"lexis/internal/adapter/zipf"
)

// Index maps each significant token to the sentences it occurs in.
// A sentence is recorded once per token, in input order.
type Index struct {
	contexts    map[string][]string
	occurrences []string
}

// BuildIndex scans sentences and records, for every significant token, the
// original sentence text it appears in.
func BuildIndex(n *analyzer.Normalizer, sentences []string) (*Index, error) {
	idx := &Index{contexts: make(map[string][]string)}

	for _, sentence := range sentences {
		tokens, err := n.SignificantTokens(sentence)
		if err != nil {
			return nil, err
		}

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			idx.occurrences = append(idx.occurrences, tok)
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			idx.contexts[tok] = append(idx.contexts[tok], sentence)
		}
	}

	return idx, nil
}

// Contexts returns the sentences containing word, nil when it never occurs.
func (idx *Index) Contexts(word string) []string {
	return idx.contexts[word]
}

// Len returns the number of indexed tokens.
func (idx *Index) Len() int {
	return len(idx.contexts)
}

// Frequencies counts every significant occurrence, not just one per sentence.
func (idx *Index) Frequencies() zipf.FrequencyTable {
	return zipf.Count(idx.occurrences)
}

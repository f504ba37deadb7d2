package wordctx

import (
	"sort"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/domain"
)

const (
	// Window is how many positions on each side of the target count as neighbors.
	Window = 3
	// MaxNeighbors caps the neighbor list before stop-words are removed.
	MaxNeighbors = 15
)

// Neighbors counts alphabetic tokens within Window positions of each
// occurrence of target in its context sentences. The MaxNeighbors most
// frequent are kept, then stop-words are dropped from that list.
func Neighbors(n *analyzer.Normalizer, target string, contexts []string) ([]domain.WordCount, error) {
	counts := make(map[string]int)
	var order []string

	for _, sentence := range contexts {
		tokens, err := n.LowerWords(sentence)
		if err != nil {
			return nil, err
		}

		for i, tok := range tokens {
			if tok != target {
				continue
			}
			start := max(0, i-Window)
			end := min(len(tokens), i+Window+1)
			for j := start; j < end; j++ {
				if j == i || !analyzer.IsAlpha(tokens[j]) {
					continue
				}
				if _, seen := counts[tokens[j]]; !seen {
					order = append(order, tokens[j])
				}
				counts[tokens[j]]++
			}
		}
	}

	ranked := make([]domain.WordCount, 0, len(order))
	for _, w := range order {
		ranked = append(ranked, domain.WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > MaxNeighbors {
		ranked = ranked[:MaxNeighbors]
	}

	neighbors := make([]domain.WordCount, 0, len(ranked))
	for _, wc := range ranked {
		if n.IsStopWord(wc.Word) {
			continue
		}
		neighbors = append(neighbors, wc)
	}
	return neighbors, nil
}

package zipf

import (
	"sort"

	"lexis/internal/domain"
)

// FrequencyTable counts tokens and remembers the order they first appeared in.
type FrequencyTable struct {
	counts map[string]int
	order  []string
	total  int
}

// Count builds a FrequencyTable from a token sequence.
func Count(tokens []string) FrequencyTable {
	t := FrequencyTable{counts: make(map[string]int, len(tokens))}
	for _, tok := range tokens {
		if _, seen := t.counts[tok]; !seen {
			t.order = append(t.order, tok)
		}
		t.counts[tok]++
		t.total++
	}
	return t
}

// Get returns the count of word, 0 when absent.
func (t FrequencyTable) Get(word string) int {
	return t.counts[word]
}

// Len returns the number of distinct tokens.
func (t FrequencyTable) Len() int {
	return len(t.order)
}

// Total returns the number of counted tokens; it equals the sum of all counts.
func (t FrequencyTable) Total() int {
	return t.total
}

// Words returns distinct tokens in first-occurrence order.
func (t FrequencyTable) Words() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Rank orders the table by descending count. Equal counts keep first-occurrence order.
func Rank(t FrequencyTable) []domain.RankedWord {
	ranked := make([]domain.RankedWord, 0, len(t.order))
	for _, w := range t.order {
		ranked = append(ranked, domain.RankedWord{Word: w, Count: t.counts[w]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Top returns the first n ranked entries as word counts.
func Top(ranked []domain.RankedWord, n int) []domain.WordCount {
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]domain.WordCount, 0, n)
	for _, rw := range ranked[:n] {
		out = append(out, domain.WordCount{Word: rw.Word, Count: rw.Count})
	}
	return out
}

// Head returns at most n ranked entries.
func Head(ranked []domain.RankedWord, n int) []domain.RankedWord {
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]domain.RankedWord, n)
	copy(out, ranked[:n])
	return out
}

// Lookup finds word by linear scan and returns its rank and percentile
// (rank / len(ranked) * 100).
func Lookup(ranked []domain.RankedWord, word string) (rank int, percentile float64, ok bool) {
	for i, rw := range ranked {
		if rw.Word == word {
			rank = i + 1
			return rank, float64(rank) / float64(len(ranked)) * 100, true
		}
	}
	return 0, 0, false
}

package analyzer

import (
	"github.com/kljensen/snowball/english"

	"lexis/internal/domain"
)

// Stem returns the Snowball (Porter2) stem of a lower-cased English word.
func Stem(word string) string {
	return english.Stem(word, false)
}

// WordFamilies groups ranked words sharing a stem. Only stems with more than
// one surface form are returned, ordered by the rank of their first member.
func WordFamilies(ranked []domain.RankedWord) []domain.WordFamily {
	index := make(map[string]int)
	var families []domain.WordFamily

	for _, rw := range ranked {
		stem := Stem(rw.Word)
		if i, ok := index[stem]; ok {
			families[i].Words = append(families[i].Words, rw.Word)
			families[i].Count += rw.Count
			continue
		}
		index[stem] = len(families)
		families = append(families, domain.WordFamily{
			Stem:  stem,
			Words: []string{rw.Word},
			Count: rw.Count,
		})
	}

	result := make([]domain.WordFamily, 0)
	for _, f := range families {
		if len(f.Words) > 1 {
			result = append(result, f)
		}
	}
	return result
}

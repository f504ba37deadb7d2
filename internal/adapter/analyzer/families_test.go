package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lexis/internal/domain"
)

func TestWordFamilies(t *testing.T) {
	ranked := []domain.RankedWord{
		{Rank: 1, Word: "running", Count: 4},
		{Rank: 2, Word: "cat", Count: 3},
		{Rank: 3, Word: "runs", Count: 2},
		{Rank: 4, Word: "run", Count: 1},
	}

	families := WordFamilies(ranked)

	assert.Len(t, families, 1)
	assert.Equal(t, "run", families[0].Stem)
	assert.Equal(t, []string{"running", "runs", "run"}, families[0].Words)
	assert.Equal(t, 7, families[0].Count)
}

func TestWordFamilies_Empty(t *testing.T) {
	assert.Empty(t, WordFamilies(nil))
}

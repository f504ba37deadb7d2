package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/adapter/memstore"
)

func TestSearchUseCase(t *testing.T) {
	lib, _ := newLibrary(t)
	st := memstore.NewMemoryStore()
	lib.store = st

	_, _, err := lib.AddText("cats.txt", "", catText)
	require.NoError(t, err)
	_, _, err = lib.AddText("bank.txt", "", bankText)
	require.NoError(t, err)
	_, _, err = lib.AddText("loans.txt", "", "The loan was approved. Another loan followed the first loan.")
	require.NoError(t, err)

	uc := NewSearchUseCase(st, analyzer.NewBasicNLP())

	hits, err := uc.Search(context.Background(), "Loan", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "loans.txt", hits[0].Document.Title)
	assert.Equal(t, "bank.txt", hits[1].Document.Title)

	hits, err = uc.Search(context.Background(), "cat dog", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "cats.txt", hits[0].Document.Title)

	hits, err = uc.Search(context.Background(), "the and", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

package usecase

import (
	"context"
	"fmt"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/adapter/retriever"
	"lexis/internal/domain"
	"lexis/internal/port"
)

// BM25 parameters for library search.
const (
	SearchK1         = 1.2
	SearchB          = 0.75
	SearchTitleBoost = 0.3
)

// SearchUseCase finds library documents by the words they use.
type SearchUseCase struct {
	store      port.LibraryStore
	normalizer *analyzer.Normalizer
}

// NewSearchUseCase creates a search use case. Documents and queries are
// cleaned with the same normalizer as frequency analysis.
func NewSearchUseCase(store port.LibraryStore, nlp port.NLP) *SearchUseCase {
	return &SearchUseCase{
		store:      store,
		normalizer: analyzer.NewNormalizer(nlp),
	}
}

// Search ranks stored documents against query and returns at most k hits.
// A query made only of stop-words matches nothing.
func (u *SearchUseCase) Search(ctx context.Context, query string, k int) ([]domain.SearchHit, error) {
	queryTokens, err := u.normalizer.CleanTokens(query)
	if err != nil {
		return nil, err
	}
	if len(queryTokens) == 0 {
		return nil, nil
	}

	docs, err := u.store.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	idx := retriever.NewBM25Index(SearchK1, SearchB, SearchTitleBoost)
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := u.store.GetText(doc.ID)
		if err != nil {
			return nil, err
		}
		tokens, err := u.normalizer.CleanTokens(text)
		if err != nil {
			return nil, err
		}
		idx.Add(doc, tokens)
	}

	return idx.Search(queryTokens, k), nil
}

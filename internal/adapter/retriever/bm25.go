package retriever

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"lexis/internal/domain"
)

// BM25Index ranks library documents against a query by Okapi BM25 over
// their cleaned tokens. Query terms found in a document's title or file
// name raise its score by titleBoostWeight.
type BM25Index struct {
	k1               float64
	b                float64
	titleBoostWeight float64

	docs     []indexedDoc
	docFreq  map[string]int
	totalLen int
}

type indexedDoc struct {
	doc    domain.Document
	tf     map[string]int
	length int
}

func NewBM25Index(k1, b, titleBoostWeight float64) *BM25Index {
	return &BM25Index{
		k1:               k1,
		b:                b,
		titleBoostWeight: titleBoostWeight,
		docFreq:          make(map[string]int),
	}
}

// Add indexes doc with its cleaned tokens.
func (idx *BM25Index) Add(doc domain.Document, tokens []string) {
	tf := make(map[string]int)
	for _, t := range tokens {
		tf[t]++
	}
	for term := range tf {
		idx.docFreq[term]++
	}
	idx.docs = append(idx.docs, indexedDoc{doc: doc, tf: tf, length: len(tokens)})
	idx.totalLen += len(tokens)
}

// Len returns the number of indexed documents.
func (idx *BM25Index) Len() int {
	return len(idx.docs)
}

// Search returns at most k documents matching any query token, best first.
// Equal scores keep insertion order.
func (idx *BM25Index) Search(queryTokens []string, k int) []domain.SearchHit {
	if len(queryTokens) == 0 || len(idx.docs) == 0 {
		return nil
	}

	queryTokenSet := make(map[string]struct{}, len(queryTokens))
	for _, t := range queryTokens {
		queryTokenSet[t] = struct{}{}
	}

	N := float64(len(idx.docs))
	avgDl := float64(idx.totalLen) / N

	var results []domain.SearchHit
	for _, d := range idx.docs {
		score := 0.0
		for term := range queryTokenSet {
			tf, ok := d.tf[term]
			if !ok {
				continue
			}
			n := float64(idx.docFreq[term])
			idf := math.Log((N-n+0.5)/(n+0.5) + 1)
			tfFloat := float64(tf)
			score += idf * (tfFloat * (idx.k1 + 1)) / (tfFloat + idx.k1*(1-idx.b+idx.b*float64(d.length)/avgDl))
		}
		if score == 0 {
			continue
		}

		if idx.titleBoostWeight > 0 {
			score *= 1 + titleBoost(d.doc, queryTokenSet)*idx.titleBoostWeight
		}
		results = append(results, domain.SearchHit{Document: d.doc, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

func titleBoost(doc domain.Document, queryTokenSet map[string]struct{}) float64 {
	titleTokens := tokenizeTitle(doc.Title)
	if len(titleTokens) == 0 || len(queryTokenSet) == 0 {
		return 0
	}

	matches := 0
	for _, tt := range titleTokens {
		if _, exists := queryTokenSet[tt]; exists {
			matches++
		}
	}

	return float64(matches) / float64(len(queryTokenSet))
}

// tokenizeTitle splits a title or file name on dots, separators, underscores,
// hyphens and spaces, dropping the file extension.
func tokenizeTitle(title string) []string {
	title = strings.TrimSuffix(filepath.Base(title), filepath.Ext(title))

	var tokens []string
	for _, token := range strings.FieldsFunc(title, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' ' || r == '/'
	}) {
		token = strings.ToLower(token)
		if len(token) >= 2 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

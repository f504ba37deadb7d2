package retriever

import (
	"testing"

	"lexis/internal/domain"
)

func TestBM25Scoring(t *testing.T) {
	idx := NewBM25Index(1.2, 0.75, 0)

	idx.Add(domain.Document{ID: "doc1", Title: "one.txt"}, []string{"test", "document", "authentication", "login"})
	idx.Add(domain.Document{ID: "doc2", Title: "two.txt"}, []string{"database", "connection", "pooling", "query", "optimization"})
	idx.Add(domain.Document{ID: "doc3", Title: "three.txt"}, []string{"user", "authentication", "authentication", "tokens", "oauth"})

	results := idx.Search([]string{"authentication"}, 10)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID != "doc3" {
		t.Errorf("expected doc3 first (higher term frequency), got %s", results[0].Document.ID)
	}
	for _, r := range results {
		if r.Document.ID == "doc2" {
			t.Error("doc2 does not mention the query and should not match")
		}
		if r.Score <= 0 {
			t.Errorf("expected positive score, got %f", r.Score)
		}
	}
}

func TestBM25Search_Limit(t *testing.T) {
	idx := NewBM25Index(1.2, 0.75, 0)
	for _, id := range []string{"a", "b", "c"} {
		idx.Add(domain.Document{ID: id}, []string{"river", "bank"})
	}

	results := idx.Search([]string{"river"}, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID != "a" || results[1].Document.ID != "b" {
		t.Errorf("expected insertion order for equal scores, got %s, %s", results[0].Document.ID, results[1].Document.ID)
	}
}

func TestBM25Search_Empty(t *testing.T) {
	idx := NewBM25Index(1.2, 0.75, 0.3)
	if got := idx.Search([]string{"river"}, 5); got != nil {
		t.Errorf("expected no results from empty index, got %v", got)
	}

	idx.Add(domain.Document{ID: "a"}, []string{"river"})
	if got := idx.Search(nil, 5); got != nil {
		t.Errorf("expected no results for empty query, got %v", got)
	}
}

func TestBM25Search_TitleBoost(t *testing.T) {
	idx := NewBM25Index(1.2, 0.75, 0.5)
	idx.Add(domain.Document{ID: "plain", Title: "notes.txt"}, []string{"river", "bank"})
	idx.Add(domain.Document{ID: "titled", Title: "river-walk.md"}, []string{"river", "bank"})

	results := idx.Search([]string{"river"}, 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID != "titled" {
		t.Errorf("expected title match to rank first, got %s", results[0].Document.ID)
	}
}

func TestTokenizeTitle(t *testing.T) {
	got := tokenizeTitle("Moby_Dick-chapter 1.txt")
	want := []string{"moby", "dick", "chapter"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

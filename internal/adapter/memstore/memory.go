package memstore

import (
	"fmt"
	"sort"
	"sync"

	"lexis/internal/domain"
	"lexis/internal/port"
)

type reportKey struct {
	docID  string
	target string
}

// MemoryStore is a LibraryStore kept in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	docs    map[string]domain.Document
	texts   map[string]string
	digests map[string]string
	reports map[reportKey]domain.SavedReport
}

var _ port.LibraryStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:    make(map[string]domain.Document),
		texts:   make(map[string]string),
		digests: make(map[string]string),
		reports: make(map[reportKey]domain.SavedReport),
	}
}

func (s *MemoryStore) PutDocument(doc domain.Document, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.docs[doc.ID]; ok {
		delete(s.digests, prev.Digest)
		s.deleteReports(doc.ID)
	}
	s.docs[doc.ID] = doc
	s.texts[doc.ID] = text
	s.digests[doc.Digest] = doc.ID
	return nil
}

func (s *MemoryStore) GetDocument(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	return doc, nil
}

func (s *MemoryStore) GetText(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	return text, nil
}

func (s *MemoryStore) FindByDigest(digest string) (domain.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.digests[digest]
	if !ok {
		return domain.Document{}, false, nil
	}
	return s.docs[id], true, nil
}

func (s *MemoryStore) ListDocuments() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].AddedAt.Equal(docs[j].AddedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].AddedAt.Before(docs[j].AddedAt)
	})
	return docs, nil
}

func (s *MemoryStore) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	delete(s.docs, id)
	delete(s.texts, id)
	delete(s.digests, doc.Digest)
	s.deleteReports(id)
	return nil
}

func (s *MemoryStore) deleteReports(docID string) {
	for k := range s.reports {
		if k.docID == docID {
			delete(s.reports, k)
		}
	}
}

func (s *MemoryStore) PutReport(report domain.SavedReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[report.DocID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, report.DocID)
	}
	s.reports[reportKey{report.DocID, report.Target}] = report
	return nil
}

func (s *MemoryStore) GetReport(docID, target string) (domain.SavedReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[reportKey{docID, target}]
	if !ok {
		return domain.SavedReport{}, port.ErrReportNotFound
	}
	return report, nil
}

func (s *MemoryStore) ClearReports() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = make(map[reportKey]domain.SavedReport)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"lexis/internal/domain"
	"lexis/internal/port"
)

var (
	bucketDocs    = []byte("docs")
	bucketTexts   = []byte("texts")
	bucketDigests = []byte("digests")
	bucketReports = []byte("reports")
	bucketStats   = []byte("stats")
)

// BoltStore is the document library: document metadata, document text and
// the last saved report per (document, target word).
type BoltStore struct {
	db *bbolt.DB
}

var _ port.LibraryStore = (*BoltStore)(nil)

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketDocs, bucketTexts, bucketDigests, bucketReports, bucketStats}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func reportKey(docID, target string) []byte {
	return []byte(docID + "\x00" + target)
}

// PutDocument stores doc and its text, replacing an earlier version. Saved
// reports of a replaced document are dropped.
func (s *BoltStore) PutDocument(doc domain.Document, text string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docs := tx.Bucket(bucketDocs)
		if old := docs.Get([]byte(doc.ID)); old != nil {
			var prev domain.Document
			if err := json.Unmarshal(old, &prev); err != nil {
				return err
			}
			if prev.Digest != doc.Digest {
				if err := tx.Bucket(bucketDigests).Delete([]byte(prev.Digest)); err != nil {
					return err
				}
			}
			if err := deleteReports(tx, doc.ID); err != nil {
				return err
			}
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if err := docs.Put([]byte(doc.ID), data); err != nil {
			return err
		}
		if err := tx.Bucket(bucketTexts).Put([]byte(doc.ID), []byte(text)); err != nil {
			return err
		}
		return tx.Bucket(bucketDigests).Put([]byte(doc.Digest), []byte(doc.ID))
	})
}

func (s *BoltStore) GetDocument(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
		}
		return json.Unmarshal(data, &doc)
	})
	return doc, err
}

func (s *BoltStore) GetText(id string) (string, error) {
	var text string
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTexts).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
		}
		text = string(data)
		return nil
	})
	return text, err
}

// FindByDigest looks a document up by the digest of its text.
func (s *BoltStore) FindByDigest(digest string) (domain.Document, bool, error) {
	var doc domain.Document
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(bucketDigests).Get([]byte(digest))
		if id == nil {
			return nil
		}
		data := tx.Bucket(bucketDocs).Get(id)
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &doc)
	})
	return doc, found, err
}

// ListDocuments returns every document, oldest first.
func (s *BoltStore) ListDocuments() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).ForEach(func(_, v []byte) error {
			var doc domain.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].AddedAt.Before(docs[j].AddedAt)
	})
	return docs, nil
}

func (s *BoltStore) DeleteDocument(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docs := tx.Bucket(bucketDocs)
		data := docs.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
		}
		var doc domain.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}

		if err := docs.Delete([]byte(id)); err != nil {
			return err
		}
		if err := tx.Bucket(bucketTexts).Delete([]byte(id)); err != nil {
			return err
		}
		if err := tx.Bucket(bucketDigests).Delete([]byte(doc.Digest)); err != nil {
			return err
		}
		return deleteReports(tx, id)
	})
}

func deleteReports(tx *bbolt.Tx, docID string) error {
	b := tx.Bucket(bucketReports)
	prefix := []byte(docID + "\x00")

	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// PutReport saves report as the latest one for its document and target.
func (s *BoltStore) PutReport(report domain.SavedReport) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketDocs).Get([]byte(report.DocID)) == nil {
			return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, report.DocID)
		}
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketReports).Put(reportKey(report.DocID, report.Target), data)
	})
}

// GetReport returns the saved report for docID and target, or
// ErrReportNotFound when none was saved.
func (s *BoltStore) GetReport(docID, target string) (domain.SavedReport, error) {
	var report domain.SavedReport
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketReports).Get(reportKey(docID, target))
		if data == nil {
			return port.ErrReportNotFound
		}
		return json.Unmarshal(data, &report)
	})
	return report, err
}

// ClearReports drops every saved report and keeps the documents.
func (s *BoltStore) ClearReports() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketReports); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketReports)
		return err
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

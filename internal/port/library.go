package port

import (
	"errors"

	"lexis/internal/domain"
)

type LibraryStore interface {
	PutDocument(doc domain.Document, text string) error

	GetDocument(id string) (domain.Document, error)

	GetText(id string) (string, error)

	FindByDigest(digest string) (domain.Document, bool, error)

	ListDocuments() ([]domain.Document, error)

	DeleteDocument(id string) error

	PutReport(report domain.SavedReport) error

	GetReport(docID, target string) (domain.SavedReport, error)

	ClearReports() error

	Close() error
}

// ErrReportNotFound is returned by GetReport when no report was saved.
var ErrReportNotFound = errors.New("report not found")

package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lexis/internal/domain"
	"lexis/internal/port"
)

// ErrAmbiguousID is returned when an ID prefix matches several documents.
var ErrAmbiguousID = errors.New("ambiguous document id")

// LibraryUseCase manages the stored documents and their saved reports.
type LibraryUseCase struct {
	store    port.LibraryStore
	analyzer port.Analyzer
	reader   port.FileReader
	backend  string
	logger   *slog.Logger
	tracer   trace.Tracer

	now   func() time.Time
	newID func() string
}

// NewLibraryUseCase creates a library use case. backend names the NLP
// backend the analyzer runs with; it is recorded on saved reports.
func NewLibraryUseCase(
	store port.LibraryStore,
	analyzer port.Analyzer,
	reader port.FileReader,
	backend string,
	logger *slog.Logger,
) *LibraryUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryUseCase{
		store:    store,
		analyzer: analyzer,
		reader:   reader,
		backend:  backend,
		logger:   logger,
		tracer:   otel.Tracer("lexis/library"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Digest returns the hex SHA-256 of text.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// AddFile reads path and stores it. A file whose text is already in the
// library is not stored twice; the existing document is returned with
// added=false.
func (u *LibraryUseCase) AddFile(path string) (doc domain.Document, added bool, err error) {
	text, err := u.reader.ReadFile(path)
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("failed to read file: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Document{}, false, err
	}
	return u.AddText(filepath.Base(path), abs, text)
}

// AddText stores text under title.
func (u *LibraryUseCase) AddText(title, path, text string) (domain.Document, bool, error) {
	digest := Digest(text)
	if existing, ok, err := u.store.FindByDigest(digest); err != nil {
		return domain.Document{}, false, err
	} else if ok {
		u.logger.Debug("document already in library", "id", existing.ID, "title", existing.Title)
		return existing, false, nil
	}

	now := u.now()
	doc := domain.Document{
		ID:        u.newID(),
		Title:     title,
		Path:      path,
		Digest:    digest,
		Words:     len(strings.Fields(text)),
		AddedAt:   now,
		UpdatedAt: now,
	}
	if err := u.store.PutDocument(doc, text); err != nil {
		return domain.Document{}, false, fmt.Errorf("failed to store document: %w", err)
	}
	u.logger.Info("document added", "id", doc.ID, "title", doc.Title, "words", doc.Words)
	return doc, true, nil
}

// ImportResult contains the results of importing a directory.
type ImportResult struct {
	Added   int
	Skipped int
	Errors  []string
}

// Import adds every file the walker finds under root.
func (u *LibraryUseCase) Import(walker port.FileWalker, root string, progress ProgressFunc) (*ImportResult, error) {
	files, err := walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	result := &ImportResult{}
	for i, file := range files {
		_, added, err := u.AddFile(file.Path)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("failed to add %s: %v", file.Path, err))
		case added:
			result.Added++
		default:
			result.Skipped++
		}
		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}
	return result, nil
}

// List returns every document, oldest first.
func (u *LibraryUseCase) List() ([]domain.Document, error) {
	return u.store.ListDocuments()
}

// Resolve finds a document by full ID or unique ID prefix.
func (u *LibraryUseCase) Resolve(id string) (domain.Document, error) {
	if doc, err := u.store.GetDocument(id); err == nil {
		return doc, nil
	} else if !errors.Is(err, domain.ErrDocumentNotFound) {
		return domain.Document{}, err
	}

	docs, err := u.store.ListDocuments()
	if err != nil {
		return domain.Document{}, err
	}
	var matches []domain.Document
	for _, doc := range docs {
		if id != "" && strings.HasPrefix(doc.ID, id) {
			matches = append(matches, doc)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	case 1:
		return matches[0], nil
	}
	return domain.Document{}, fmt.Errorf("%w: %s matches %d documents", ErrAmbiguousID, id, len(matches))
}

// Text returns the stored text of a document.
func (u *LibraryUseCase) Text(id string) (domain.Document, string, error) {
	doc, err := u.Resolve(id)
	if err != nil {
		return domain.Document{}, "", err
	}
	text, err := u.store.GetText(doc.ID)
	if err != nil {
		return domain.Document{}, "", err
	}
	return doc, text, nil
}

// Remove deletes a document and its saved reports.
func (u *LibraryUseCase) Remove(id string) (domain.Document, error) {
	doc, err := u.Resolve(id)
	if err != nil {
		return domain.Document{}, err
	}
	if err := u.store.DeleteDocument(doc.ID); err != nil {
		return domain.Document{}, err
	}
	u.logger.Info("document removed", "id", doc.ID, "title", doc.Title)
	return doc, nil
}

// Analyze returns the report for a stored document, reusing the saved one
// unless refresh is set or it was made by another backend. The second
// return value reports whether the saved report was reused.
func (u *LibraryUseCase) Analyze(ctx context.Context, id, target string, refresh bool) (domain.SavedReport, bool, error) {
	ctx, span := u.tracer.Start(ctx, "library.analyze")
	defer span.End()

	doc, text, err := u.Text(id)
	if err != nil {
		span.RecordError(err)
		return domain.SavedReport{}, false, err
	}
	target = strings.ToLower(strings.TrimSpace(target))
	span.SetAttributes(
		attribute.String("doc_id", doc.ID),
		attribute.String("target", target),
		attribute.String("backend", u.backend),
	)

	if !refresh {
		saved, err := u.store.GetReport(doc.ID, target)
		switch {
		case err == nil && saved.Backend == u.backend:
			span.SetAttributes(attribute.Bool("cached", true))
			return saved, true, nil
		case err != nil && !errors.Is(err, port.ErrReportNotFound):
			span.RecordError(err)
			return domain.SavedReport{}, false, err
		}
	}
	span.SetAttributes(attribute.Bool("cached", false))

	report, err := u.analyzer.AnalyzeCombined(ctx, text, target)
	if err != nil {
		span.RecordError(err)
		return domain.SavedReport{}, false, err
	}

	saved := domain.SavedReport{
		DocID:     doc.ID,
		Target:    target,
		Backend:   u.backend,
		CreatedAt: u.now(),
		Report:    report,
	}
	if err := u.store.PutReport(saved); err != nil {
		return domain.SavedReport{}, false, fmt.Errorf("failed to save report: %w", err)
	}
	u.logger.Debug("report saved", "id", doc.ID, "target", target, "backend", u.backend)
	return saved, false, nil
}

// SavedReport returns the saved report for a document and target, nil when
// none was saved.
func (u *LibraryUseCase) SavedReport(id, target string) (*domain.SavedReport, error) {
	doc, err := u.Resolve(id)
	if err != nil {
		return nil, err
	}
	saved, err := u.store.GetReport(doc.ID, strings.ToLower(strings.TrimSpace(target)))
	if errors.Is(err, port.ErrReportNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

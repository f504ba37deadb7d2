package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexis/internal/adapter/fs"
	"lexis/internal/adapter/memstore"
	"lexis/internal/domain"
	"lexis/internal/logging"
)

// countingAnalyzer counts the analyses that reach the real analyzer.
type countingAnalyzer struct {
	*AnalyzeUseCase
	calls int
}

func (a *countingAnalyzer) AnalyzeCombined(ctx context.Context, text, target string) (domain.AnalysisReport, error) {
	a.calls++
	return a.AnalyzeUseCase.AnalyzeCombined(ctx, text, target)
}

func newLibrary(t *testing.T) (*LibraryUseCase, *countingAnalyzer) {
	t.Helper()
	analyzer := &countingAnalyzer{AnalyzeUseCase: newAnalyzeUseCase()}
	uc := NewLibraryUseCase(memstore.NewMemoryStore(), analyzer, fs.NewTextReader(), "basic", logging.Discard())

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	n := 0
	uc.newID = func() string {
		n++
		return fmt.Sprintf("doc-%04d", n)
	}
	return uc, analyzer
}

func TestLibraryUseCase_AddFile(t *testing.T) {
	uc, _ := newLibrary(t)
	root := writeCorpus(t, map[string]string{"cats.txt": catText, "copy.txt": catText})

	doc, added, err := uc.AddFile(filepath.Join(root, "cats.txt"))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "doc-0001", doc.ID)
	assert.Equal(t, "cats.txt", doc.Title)
	assert.Equal(t, 9, doc.Words)
	assert.Equal(t, Digest(catText), doc.Digest)

	dup, added, err := uc.AddFile(filepath.Join(root, "copy.txt"))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, doc.ID, dup.ID)

	docs, err := uc.List()
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLibraryUseCase_Import(t *testing.T) {
	uc, _ := newLibrary(t)
	root := writeCorpus(t, map[string]string{"a.txt": catText, "b.txt": bankText, "c.txt": catText})

	calls := 0
	result, err := uc.Import(fs.NewWalker(nil, nil), root, func(processed, total int, _ string) {
		calls++
		assert.Equal(t, 3, total)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 3, calls)
}

func TestLibraryUseCase_Resolve(t *testing.T) {
	uc, _ := newLibrary(t)
	_, _, err := uc.AddText("a", "", catText)
	require.NoError(t, err)
	_, _, err = uc.AddText("b", "", bankText)
	require.NoError(t, err)

	doc, err := uc.Resolve("doc-0002")
	require.NoError(t, err)
	assert.Equal(t, "b", doc.Title)

	doc, err = uc.Resolve("doc-0001")
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Title)

	_, err = uc.Resolve("doc-")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = uc.Resolve("nope")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestLibraryUseCase_AnalyzeReusesSavedReport(t *testing.T) {
	uc, analyzer := newLibrary(t)
	doc, _, err := uc.AddText("bank", "", bankText)
	require.NoError(t, err)

	first, reused, err := uc.Analyze(context.Background(), doc.ID, "Bank", false)
	require.NoError(t, err)
	assert.False(t, reused)
	assert.Equal(t, "bank", first.Target)
	assert.Equal(t, "basic", first.Backend)
	require.NotNil(t, first.Report.Context.Word)
	assert.Equal(t, 2, first.Report.Context.Word.Frequency)

	second, reused, err := uc.Analyze(context.Background(), doc.ID, "bank", false)
	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, 1, analyzer.calls)

	_, reused, err = uc.Analyze(context.Background(), doc.ID, "bank", true)
	require.NoError(t, err)
	assert.False(t, reused)
	assert.Equal(t, 2, analyzer.calls)
}

func TestLibraryUseCase_AnalyzeOtherBackendIsStale(t *testing.T) {
	uc, analyzer := newLibrary(t)
	doc, _, err := uc.AddText("cats", "", catText)
	require.NoError(t, err)
	_, _, err = uc.Analyze(context.Background(), doc.ID, "", false)
	require.NoError(t, err)

	uc.backend = "prose"
	_, reused, err := uc.Analyze(context.Background(), doc.ID, "", false)
	require.NoError(t, err)
	assert.False(t, reused)
	assert.Equal(t, 2, analyzer.calls)
}

func TestLibraryUseCase_Remove(t *testing.T) {
	uc, _ := newLibrary(t)
	doc, _, err := uc.AddText("cats", "", catText)
	require.NoError(t, err)

	removed, err := uc.Remove(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, removed.ID)

	_, _, err = uc.Text(doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	_, _, err = uc.Analyze(context.Background(), doc.ID, "", false)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestLibraryUseCase_AddFileMissing(t *testing.T) {
	uc, _ := newLibrary(t)
	_, _, err := uc.AddFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLibraryUseCase_SavedReport(t *testing.T) {
	uc, _ := newLibrary(t)
	doc, _, err := uc.AddText("bank", "", bankText)
	require.NoError(t, err)

	saved, err := uc.SavedReport(doc.ID, "bank")
	require.NoError(t, err)
	assert.Nil(t, saved)

	_, _, err = uc.Analyze(context.Background(), doc.ID, "bank", false)
	require.NoError(t, err)

	saved, err = uc.SavedReport(doc.ID, " BANK ")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "bank", saved.Target)
}

package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"lexis/internal/adapter/fs"
	"lexis/internal/logging"
	"lexis/internal/port"
)

// failingReader fails for one path and reads everything else from disk.
type failingReader struct {
	fail string
}

func (r failingReader) ReadFile(path string) (string, error) {
	if filepath.Base(path) == r.fail {
		return "", errors.New("permission denied")
	}
	return fs.NewTextReader().ReadFile(path)
}

var _ port.FileReader = failingReader{}

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, text := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	}
	return root
}

func TestBatchUseCase_Run(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"a.txt":       catText,
		"b.txt":       bankText,
		"nested/c.md": "Dogs bark. Dogs run.",
		"skip.go":     "package skip",
	})

	uc := NewBatchUseCase(newAnalyzeUseCase(), fs.NewWalker(nil, nil), fs.NewTextReader(), 2, logging.Discard())

	var mu sync.Mutex
	var calls, lastTotal int
	result, err := uc.Run(context.Background(), root, "", func(processed, total int, _ string) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		lastTotal = total
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, 3, result.Analyzed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, lastTotal)

	assert.Equal(t, "a.txt", filepath.Base(result.Items[0].Path))
	require.NotNil(t, result.Items[0].Report)
	assert.Equal(t, 6, result.Items[0].Report.Frequency.TotalWords)
	assert.Equal(t, 9, result.Items[0].Words)
	assert.Equal(t, "c.md", filepath.Base(result.Items[2].Path))
}

func TestBatchUseCase_MatchesSequentialAnalysis(t *testing.T) {
	root := writeCorpus(t, map[string]string{"a.txt": catText, "b.txt": bankText})
	analyzer := newAnalyzeUseCase()

	result, err := NewBatchUseCase(analyzer, fs.NewWalker(nil, nil), fs.NewTextReader(), 4, logging.Discard()).
		Run(context.Background(), root, "bank", nil)
	require.NoError(t, err)

	for _, item := range result.Items {
		text, err := os.ReadFile(item.Path)
		require.NoError(t, err)
		want, err := analyzer.AnalyzeCombined(context.Background(), string(text), "bank")
		require.NoError(t, err)
		require.NotNil(t, item.Report)
		assert.Equal(t, want, *item.Report)
	}
}

func TestBatchUseCase_FailedFileIsRecorded(t *testing.T) {
	root := writeCorpus(t, map[string]string{"a.txt": catText, "b.txt": bankText})

	uc := NewBatchUseCase(newAnalyzeUseCase(), fs.NewWalker(nil, nil), failingReader{fail: "b.txt"}, 2, logging.Discard())
	result, err := uc.Run(context.Background(), root, "", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 1, result.Failed)
	assert.Nil(t, result.Items[1].Report)
	assert.Contains(t, result.Items[1].Error, "permission denied")
}

func TestBatchUseCase_Cancelled(t *testing.T) {
	root := writeCorpus(t, map[string]string{"a.txt": catText})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewBatchUseCase(newAnalyzeUseCase(), fs.NewWalker(nil, nil), fs.NewTextReader(), 1, logging.Discard())
	_, err := uc.Run(ctx, root, "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchUseCase_MissingRoot(t *testing.T) {
	uc := NewBatchUseCase(newAnalyzeUseCase(), fs.NewWalker(nil, nil), fs.NewTextReader(), 1, logging.Discard())
	_, err := uc.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), "", nil)
	assert.Error(t, err)
}

func TestBatchUseCase_RecordsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	root := writeCorpus(t, map[string]string{"a.txt": catText, "b.txt": bankText})
	uc := NewBatchUseCase(newAnalyzeUseCase(), fs.NewWalker(nil, nil), failingReader{fail: "b.txt"}, 2, logging.Discard())

	result, err := uc.Run(context.Background(), root, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	names := map[string]int{}
	failed := 0
	for _, span := range recorder.Ended() {
		names[span.Name()]++
		if span.Status().Code == codes.Error {
			failed++
		}
	}
	assert.Equal(t, map[string]int{"batch.run": 1, "batch.analyze_file": 2}, names)
	assert.Equal(t, 1, failed)
}

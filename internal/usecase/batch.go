package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lexis/internal/domain"
	"lexis/internal/port"
)

// ProgressFunc reports how many of total items are done and which one just finished.
type ProgressFunc func(processed, total int, current string)

// BatchItem is the outcome of analyzing one file.
type BatchItem struct {
	Path   string                 `json:"path" yaml:"path"`
	Words  int                    `json:"words" yaml:"words"`
	Report *domain.AnalysisReport `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResult contains the results of a batch run, in path order.
type BatchResult struct {
	Items    []BatchItem `json:"items" yaml:"items"`
	Analyzed int         `json:"analyzed" yaml:"analyzed"`
	Failed   int         `json:"failed" yaml:"failed"`
}

// BatchUseCase analyzes every document under a directory. Each file gets an
// independent analysis; at most workers run at once.
type BatchUseCase struct {
	analyzer port.Analyzer
	walker   port.FileWalker
	reader   port.FileReader
	workers  int
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewBatchUseCase creates a new batch use case.
func NewBatchUseCase(
	analyzer port.Analyzer,
	walker port.FileWalker,
	reader port.FileReader,
	workers int,
	logger *slog.Logger,
) *BatchUseCase {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchUseCase{
		analyzer: analyzer,
		walker:   walker,
		reader:   reader,
		workers:  workers,
		logger:   logger,
		tracer:   otel.Tracer("lexis/batch"),
	}
}

// Run analyzes each matched file under root for target. A failing file is
// recorded in its item; Run itself only fails when the walk fails or ctx is
// cancelled.
func (u *BatchUseCase) Run(ctx context.Context, root, target string, progress ProgressFunc) (*BatchResult, error) {
	ctx, span := u.tracer.Start(ctx, "batch.run")
	defer span.End()

	files, err := u.walker.Walk(root)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "walk failed")
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	u.logger.Debug("batch files found", "root", root, "files", len(files), "workers", u.workers)
	span.SetAttributes(
		attribute.String("root", root),
		attribute.String("target", target),
		attribute.Int("files", len(files)),
		attribute.Int("workers", u.workers),
	)

	items := make([]BatchItem, len(files))
	sem := make(chan struct{}, u.workers)
	var wg sync.WaitGroup
	var done atomic.Int64

	for i, file := range files {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			items[idx] = u.analyzeFile(ctx, path, target)
			n := done.Add(1)
			if progress != nil {
				progress(int(n), len(files), path)
			}
		}(i, file.Path)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &BatchResult{Items: items}
	for _, item := range items {
		if item.Error != "" {
			result.Failed++
			continue
		}
		result.Analyzed++
	}
	span.SetAttributes(attribute.Int("analyzed", result.Analyzed), attribute.Int("failed", result.Failed))
	return result, nil
}

func (u *BatchUseCase) analyzeFile(ctx context.Context, path, target string) BatchItem {
	ctx, span := u.tracer.Start(ctx, "batch.analyze_file", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	item := BatchItem{Path: path}
	if err := ctx.Err(); err != nil {
		item.Error = err.Error()
		return item
	}

	text, err := u.reader.ReadFile(path)
	if err != nil {
		u.logger.Warn("read failed", "path", path, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		item.Error = fmt.Sprintf("failed to read file: %v", err)
		return item
	}
	item.Words = len(strings.Fields(text))
	span.SetAttributes(attribute.Int("words", item.Words))

	report, err := u.analyzer.AnalyzeCombined(ctx, text, target)
	if err != nil {
		u.logger.Warn("analysis failed", "path", path, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "analysis failed")
		item.Error = fmt.Sprintf("analysis failed: %v", err)
		return item
	}
	item.Report = &report
	return item
}

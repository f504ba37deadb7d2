package port

import (
	"context"

	"lexis/internal/domain"
)

// Analyzer produces a combined report for one text.
type Analyzer interface {
	AnalyzeCombined(ctx context.Context, text, target string) (domain.AnalysisReport, error)
}

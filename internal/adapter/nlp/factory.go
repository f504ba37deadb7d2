package nlp

import (
	"fmt"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/port"
)

// New returns the backend registered under name.
func New(name string) (port.NLP, error) {
	switch name {
	case "", ProseName:
		return NewProseNLP(), nil
	case analyzer.BasicName:
		return analyzer.NewBasicNLP(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported backend %q", port.ErrNLPUnavailable, name)
	}
}

package ports

import (
	"context"

	"github.com/mikey/news-credibility/internal/core"
)

// Analyzer is the analysis engine as seen by the presentation layer
type Analyzer interface {
	// Analyze runs one credibility analysis
	Analyze(ctx context.Context, raw string) (*core.AnalysisReport, error)

	// ClassifierName identifies the active classifier
	ClassifierName() string
}

// Frontend defines the interface for a long running presentation surface
type Frontend interface {
	// Start starts serving requests
	Start() error

	// Stop stops serving requests
	Stop() error
}

package analyzer

import (
	"context"
	"image"

	"go-mineral-analyzer/pkg/models"
)

// SampleAnalyzer runs the full analysis pipeline over a decoded image and
// its precomputed sample mask.
type SampleAnalyzer interface {
	// Analyze runs one full pass and returns the aggregate result.
	Analyze(ctx context.Context, img image.Image, mask *Mask, opts AnalysisOptions) (*models.AnalysisResult, error)

	// AnalyzeGrid additionally returns the per-pixel label grid for
	// inspection or visualization.
	AnalyzeGrid(ctx context.Context, img image.Image, mask *Mask, opts AnalysisOptions) (*models.AnalysisResult, *LabelGrid, error)

	// Lifecycle management
	Close() error
}

// Verifier wraps an analyzer with the reanalysis convergence protocol.
type Verifier interface {
	Verify(ctx context.Context, img image.Image, mask *Mask, opts AnalysisOptions) (*models.AnalysisResult, error)
}

// Package strategy selects between the single-pass pipeline and the
// verified (reanalysis) pipeline without the caller knowing which runs.
package strategy

import (
	"context"
	"image"

	"go-mineral-analyzer/internal/analyzer"
	"go-mineral-analyzer/pkg/models"
)

// AnalysisStrategy is one way of turning a capture and mask into a result.
type AnalysisStrategy interface {
	Run(ctx context.Context, img image.Image, mask *analyzer.Mask, opts analyzer.AnalysisOptions) (*models.AnalysisResult, error)
	Name() string
}

// SinglePassStrategy runs the pipeline exactly once.
type SinglePassStrategy struct {
	analyzer analyzer.SampleAnalyzer
}

// NewSinglePassStrategy creates the plain one-shot strategy.
func NewSinglePassStrategy(a analyzer.SampleAnalyzer) AnalysisStrategy {
	return &SinglePassStrategy{analyzer: a}
}

// Run performs one analysis pass.
func (s *SinglePassStrategy) Run(ctx context.Context, img image.Image, mask *analyzer.Mask, opts analyzer.AnalysisOptions) (*models.AnalysisResult, error) {
	return s.analyzer.Analyze(ctx, img, mask, opts)
}

// Name returns the strategy name.
func (s *SinglePassStrategy) Name() string { return "single_pass" }

// VerifiedStrategy wraps the pipeline with the reanalysis convergence
// protocol: Invalid first-pass results are re-run and checked for agreement.
type VerifiedStrategy struct {
	verifier analyzer.Verifier
}

// NewVerifiedStrategy creates the reanalysis-backed strategy.
func NewVerifiedStrategy(v analyzer.Verifier) AnalysisStrategy {
	return &VerifiedStrategy{verifier: v}
}

// Run performs analysis with reanalysis verification of Invalid results.
func (s *VerifiedStrategy) Run(ctx context.Context, img image.Image, mask *analyzer.Mask, opts analyzer.AnalysisOptions) (*models.AnalysisResult, error) {
	return s.verifier.Verify(ctx, img, mask, opts)
}

// Name returns the strategy name.
func (s *VerifiedStrategy) Name() string { return "verified" }

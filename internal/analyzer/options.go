package analyzer

import "image"

// AnalysisOptions provides flexible configuration for a single analysis.
type AnalysisOptions struct {
	// Concurrency
	MaxWorkers int // 0 means runtime.NumCPU()

	// Classifier calibration
	Thresholds ConfidenceThresholds

	// Segmentation
	MinParticleSize int // 0 means max(20, width*height/50000)

	// Optional region of interest further restricting the sample mask.
	ROI *image.Rectangle

	// Reanalysis
	TargetMaterial string // material whose fraction the convergence check tracks
	MaxRuns        int
	QualityTol     float64 // quality index range tolerance
	TargetTol      float64 // target fraction range tolerance
}

// DefaultOptions returns the calibrated defaults.
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		MaxWorkers:      0,
		Thresholds:      DefaultConfidenceThresholds(),
		MinParticleSize: 0,
		TargetMaterial:  "gold",
		MaxRuns:         3,
		QualityTol:      5.0,
		TargetTol:       0.0005,
	}
}

// WithROI restricts analysis to a rectangular region of interest.
func (opts AnalysisOptions) WithROI(roi image.Rectangle) AnalysisOptions {
	opts.ROI = &roi
	return opts
}

// WithTargetMaterial sets the material tracked by the reanalysis
// convergence check.
func (opts AnalysisOptions) WithTargetMaterial(id string) AnalysisOptions {
	opts.TargetMaterial = id
	return opts
}

// WithWorkers overrides the classification fan-out width.
func (opts AnalysisOptions) WithWorkers(n int) AnalysisOptions {
	opts.MaxWorkers = n
	return opts
}

package analyzer

import (
	"math"

	"go-mineral-analyzer/pkg/models"
)

// Luma clipping bounds for the exposure sub-score.
const (
	clipLow  = 5.0
	clipHigh = 250.0
)

// Composite quality index weights.
const (
	focusWeight    = 0.4
	exposureWeight = 0.3
	maskWeight     = 0.3
)

// materialTally accumulates per-material pixel evidence during the
// classification pass.
type materialTally struct {
	pixels   int
	scoreSum float64
}

// diagAccumulator is a worker-private statistics accumulator. Workers merge
// into a shared instance once per completion, never per pixel.
type diagAccumulator struct {
	gradientEnergy float64
	clippedPixels  int
	samplePixels   int
	tallies        []materialTally
}

func newDiagAccumulator(catalogLen int) *diagAccumulator {
	return &diagAccumulator{tallies: make([]materialTally, catalogLen)}
}

func (a *diagAccumulator) merge(b *diagAccumulator) {
	a.gradientEnergy += b.gradientEnergy
	a.clippedPixels += b.clippedPixels
	a.samplePixels += b.samplePixels
	for i := range b.tallies {
		a.tallies[i].pixels += b.tallies[i].pixels
		a.tallies[i].scoreSum += b.tallies[i].scoreSum
	}
}

// computeDiagnostics folds the aggregated counters into the focus, exposure
// and mask sub-scores. All denominators are floored at 1 so a degenerate
// zero-sample input yields well-defined low scores instead of dividing by
// zero.
func computeDiagnostics(acc *diagAccumulator, totalPixels int) (models.Diagnostics, float64) {
	sampleCount := math.Max(1, float64(acc.samplePixels))

	focus := clamp01(acc.gradientEnergy/(255*255*sampleCount)) * 100

	clipFraction := float64(acc.clippedPixels) / sampleCount
	exposure := 100 * (1 - math.Min(1, clipFraction/0.2))

	fg := float64(acc.samplePixels) / math.Max(1, float64(totalPixels))
	mask := maskScore(fg)

	index := clamp(focusWeight*focus+exposureWeight*exposure+maskWeight*mask, 0, 100)

	return models.Diagnostics{
		FocusScore:       focus,
		ExposureScore:    exposure,
		MaskScore:        mask,
		ClippingFraction: clipFraction,
		SamplePixels:     acc.samplePixels,
		TotalPixels:      totalPixels,
	}, index
}

// maskScore rates the foreground fraction: too little sample is penalized
// linearly, a nearly mask-free frame is suspect, and the sweet spot is a
// bell around 60% coverage.
func maskScore(fg float64) float64 {
	switch {
	case fg < 0.3:
		return clamp(50*fg/0.3, 0, 100)
	case fg > 0.95:
		return 60
	default:
		d := (fg - 0.6) / 0.3
		return clamp(100-20*d*d, 0, 100)
	}
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

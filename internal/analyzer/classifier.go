package analyzer

import (
	"math"

	"go-mineral-analyzer/internal/catalog"
	"go-mineral-analyzer/pkg/colorspace"
)

// Proximity falloff widths. A pixel inside a range scores 1 for that term;
// outside, the term decays linearly to 0 over the falloff distance.
const (
	hueFalloff = 60.0  // degrees
	satFalloff = 0.25
	valFalloff = 0.25
)

// Term weights of the base score (hue dominates discrimination).
const (
	hueWeight = 0.4
	satWeight = 0.3
	valWeight = 0.3
)

// maxConfidence caps the reported per-pixel confidence.
const maxConfidence = 0.95

// ConfidenceThresholds holds the joint (score, gap) tier thresholds and the
// indeterminate decision floor.
type ConfidenceThresholds struct {
	HighScore   float64
	HighGap     float64
	MediumScore float64
	MediumGap   float64
	LowScore    float64
	ScoreFloor  float64
	GapEpsilon  float64
}

// DefaultConfidenceThresholds returns the calibrated tier table.
func DefaultConfidenceThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{
		HighScore:   0.75,
		HighGap:     0.15,
		MediumScore: 0.55,
		MediumGap:   0.08,
		LowScore:    0.40,
		ScoreFloor:  0.30,
		GapEpsilon:  0.05,
	}
}

// pixelClassifier scores sample pixels against the material catalog.
type pixelClassifier struct {
	catalog    *catalog.Catalog
	thresholds ConfidenceThresholds
}

func newPixelClassifier(cat *catalog.Catalog, thresholds ConfidenceThresholds) *pixelClassifier {
	return &pixelClassifier{catalog: cat, thresholds: thresholds}
}

// classify fills the label cell for one sample pixel. It never fails:
// insufficient confidence degrades to the indeterminate sentinel rather than
// forcing the best guess.
func (pc *pixelClassifier) classify(r, g, b uint8, cell *PixelLabel) {
	h, s, v := colorspace.RGBToHSV(r, g, b)
	px := pixelSample{R: r, G: g, B: b, H: h, S: s, V: v}

	cell.Sample = true
	cell.R, cell.G, cell.B = r, g, b
	cell.H, cell.S, cell.V = float32(h), float32(s), float32(v)
	cell.Material = NoMaterial
	cell.Level = levelIndeterminate
	cell.Confidence = 0

	bestIdx := -1
	bestScore, secondScore := 0.0, 0.0

	for i := 0; i < pc.catalog.Len(); i++ {
		entry := pc.catalog.Entry(i)
		score := pc.baseScore(entry, px)
		score = applyHeuristics(entry.ID, px, score)

		if score > bestScore {
			bestIdx, bestScore, secondScore = i, score, bestScore
		} else if score > secondScore {
			secondScore = score
		}
	}

	gap := bestScore - secondScore
	level := pc.confidenceLevel(bestScore, gap)

	// The core correctness contract: prefer no answer over a low-confidence
	// wrong answer.
	if bestIdx < 0 || bestScore < pc.thresholds.ScoreFloor ||
		(level == levelIndeterminate && gap < pc.thresholds.GapEpsilon) {
		return
	}
	if level == levelIndeterminate {
		return
	}

	cell.Material = int16(bestIdx)
	cell.Level = level
	cell.Confidence = float32(math.Min(bestScore, maxConfidence))
}

// baseScore is the weighted proximity of the pixel to the entry's HSV
// ranges, scaled by the entry's priority weight.
func (pc *pixelClassifier) baseScore(entry catalog.MaterialRange, px pixelSample) float64 {
	hueTerm := hueProximity(entry, px.H)
	satTerm := rangeProximity(px.S, entry.SatMin, entry.SatMax, satFalloff)
	valTerm := rangeProximity(px.V, entry.ValMin, entry.ValMax, valFalloff)
	return (hueWeight*hueTerm + satWeight*satTerm + valWeight*valTerm) * entry.Priority
}

// hueProximity handles wrap-around ranges by measuring circular distance
// from the range center.
func hueProximity(entry catalog.MaterialRange, h float64) float64 {
	dist := colorspace.HueDistance(h, entry.HueCenter())
	if dist <= entry.HueHalfWidth() {
		return 1
	}
	outside := dist - entry.HueHalfWidth()
	if outside >= hueFalloff {
		return 0
	}
	return 1 - outside/hueFalloff
}

func rangeProximity(v, lo, hi, falloff float64) float64 {
	var outside float64
	switch {
	case v < lo:
		outside = lo - v
	case v > hi:
		outside = v - hi
	default:
		return 1
	}
	if outside >= falloff {
		return 0
	}
	return 1 - outside/falloff
}

// confidenceLevel applies the documented (score, gap) tier table. High and
// Medium require both thresholds jointly; Low needs only a minimum score.
func (pc *pixelClassifier) confidenceLevel(score, gap float64) uint8 {
	t := pc.thresholds
	switch {
	case score >= t.HighScore && gap >= t.HighGap:
		return levelHigh
	case score >= t.MediumScore && gap >= t.MediumGap:
		return levelMedium
	case score >= t.LowScore:
		return levelLow
	default:
		return levelIndeterminate
	}
}

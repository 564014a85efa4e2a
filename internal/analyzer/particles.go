package analyzer

import (
	"math"

	"go-mineral-analyzer/internal/catalog"
	"go-mineral-analyzer/pkg/models"
)

// buildParticleRecord resolves a feature accumulator into an immutable
// particle record.
func buildParticleRecord(f particleFeatures, cat *catalog.Catalog, fuser ScoreFuser) models.ParticleRecord {
	n := float64(f.count)

	// Dominant material: highest confidence-weighted vote sum. Ties break to
	// the lowest catalog index so the outcome is deterministic.
	dominant := -1
	bestWeight := 0.0
	for i, weight := range f.voteWeights {
		if weight > bestWeight {
			dominant, bestWeight = i, weight
		}
	}

	confMean := f.confSum / n
	confStd := 0.0
	if f.count > 1 {
		variance := (f.confSqSum - f.confSum*f.confSum/n) / (n - 1)
		if variance > 0 {
			confStd = math.Sqrt(variance)
		}
	}

	perimeter := f.borderPixels
	circularity := 0.0
	if perimeter > 0 {
		circularity = clamp01(4 * math.Pi * n / float64(perimeter*perimeter))
	}

	bw := f.maxX - f.minX + 1
	bh := f.maxY - f.minY + 1
	major, minor := bw, bh
	if bh > bw {
		major, minor = bh, bw
	}
	if minor < 1 {
		minor = 1
	}

	composition := make(map[string]float64)
	for i, votes := range f.voteCounts {
		if votes > 0 {
			composition[cat.Entry(i).ID] = float64(votes) / n
		}
	}

	record := models.ParticleRecord{
		AreaPixels:       f.count,
		CentroidX:        f.sumX / n,
		CentroidY:        f.sumY / n,
		Circularity:      circularity,
		AspectRatio:      float64(major) / float64(minor),
		MajorAxis:        major,
		MinorAxis:        minor,
		Perimeter:        perimeter,
		BoundsMinX:       f.minX,
		BoundsMinY:       f.minY,
		BoundsMaxX:       f.maxX,
		BoundsMaxY:       f.maxY,
		AvgHue:           f.hueSum / n,
		AvgSaturation:    f.satSum / n,
		AvgValue:         f.valSum / n,
		ConfidenceMean:   confMean,
		ConfidenceStdDev: confStd,
		Composition:      composition,
	}

	if dominant >= 0 {
		fused := fuser.Fuse(cat.Entry(dominant).ID, bestWeight/math.Max(1, float64(f.voteCounts[dominant])))
		record.DominantMaterial = fused.MaterialID
		record.Confidence = fused.Confidence
		record.RawScore = fused.RawScore
	}
	return record
}

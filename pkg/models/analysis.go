package models

import "time"

// MaterialKind groups catalog entries into the three top-level material
// families reported by the analyzer.
type MaterialKind string

const (
	KindMetal   MaterialKind = "metal"
	KindCrystal MaterialKind = "crystal"
	KindGem     MaterialKind = "gem"
)

// ConfidenceLevel is the categorical bucket derived jointly from a pixel's
// best-match score and its gap over the second-best match.
type ConfidenceLevel string

const (
	ConfidenceHigh          ConfidenceLevel = "high"
	ConfidenceMedium        ConfidenceLevel = "medium"
	ConfidenceLow           ConfidenceLevel = "low"
	ConfidenceIndeterminate ConfidenceLevel = "indeterminate"
)

// QualityStatus summarizes how usable an analysis is.
type QualityStatus string

const (
	StatusOfficial          QualityStatus = "official"
	StatusPreliminary       QualityStatus = "preliminary"
	StatusInvalid           QualityStatus = "invalid"
	StatusOfficialRechecked QualityStatus = "official_rechecked"
	StatusReviewRequired    QualityStatus = "review_required"
)

// Diagnostics holds the aggregated image-quality sub-scores collected during
// the classification pass. All scores are percentages in [0,100].
type Diagnostics struct {
	FocusScore       float64 `json:"focus_score"`
	ExposureScore    float64 `json:"exposure_score"`
	MaskScore        float64 `json:"mask_score"`
	ClippingFraction float64 `json:"clipping_fraction"`
	SamplePixels     int     `json:"sample_pixels"`
	TotalPixels      int     `json:"total_pixels"`
}

// MaterialResult is one per-material line of the aggregate result. The
// sample fraction is computed against the total sample-pixel count, so
// fractions across materials need not sum to 1 (low-confidence pixels are
// left indeterminate rather than force-assigned).
type MaterialResult struct {
	MaterialID     string       `json:"material_id"`
	Name           string       `json:"name"`
	Group          string       `json:"group"`
	Kind           MaterialKind `json:"kind"`
	SampleFraction float64      `json:"sample_fraction"`
	Concentration  float64      `json:"estimated_concentration"`
	Score          float64      `json:"score"`
}

// ParticleRecord describes one detected particle (a connected component of
// sample pixels). Immutable once created.
type ParticleRecord struct {
	DominantMaterial string             `json:"dominant_material"`
	Confidence       float64            `json:"confidence"`
	RawScore         float64            `json:"raw_score"`
	AreaPixels       int                `json:"area_pixels"`
	CentroidX        float64            `json:"centroid_x"`
	CentroidY        float64            `json:"centroid_y"`
	Circularity      float64            `json:"circularity"`
	AspectRatio      float64            `json:"aspect_ratio"`
	MajorAxis        int                `json:"major_axis"`
	MinorAxis        int                `json:"minor_axis"`
	Perimeter        int                `json:"perimeter"`
	BoundsMinX       int                `json:"bounds_min_x"`
	BoundsMinY       int                `json:"bounds_min_y"`
	BoundsMaxX       int                `json:"bounds_max_x"`
	BoundsMaxY       int                `json:"bounds_max_y"`
	AvgHue           float64            `json:"avg_hue"`
	AvgSaturation    float64            `json:"avg_saturation"`
	AvgValue         float64            `json:"avg_value"`
	ConfidenceMean   float64            `json:"confidence_mean"`
	ConfidenceStdDev float64            `json:"confidence_std_dev"`
	Composition      map[string]float64 `json:"composition"`
}

// ReanalysisRun is one entry of the reanalysis audit trail.
type ReanalysisRun struct {
	Run            int     `json:"run"`
	QualityIndex   float64 `json:"quality_index"`
	TargetFraction float64 `json:"target_fraction"`
}

// AnalysisResult is the aggregate outcome of one analysis call. It is a
// self-contained, in-process data structure consumed by reporting layers.
type AnalysisResult struct {
	ID                string        `json:"id"`
	Timestamp         time.Time     `json:"timestamp"`
	ProcessingTimeSec float64       `json:"processing_time_sec"`
	QualityIndex      float64       `json:"quality_index"`
	Status            QualityStatus `json:"status"`

	Diagnostics Diagnostics `json:"diagnostics"`

	Metals   []MaterialResult `json:"metals"`
	Crystals []MaterialResult `json:"crystals"`
	Gems     []MaterialResult `json:"gems"`

	Particles []ParticleRecord `json:"particles"`

	Reanalysis []ReanalysisRun `json:"reanalysis,omitempty"`
	Summary    string          `json:"summary"`
}

// MaterialFraction returns the sample fraction reported for a material id,
// or 0 if the material does not appear in any result list.
func (r *AnalysisResult) MaterialFraction(materialID string) float64 {
	for _, list := range [][]MaterialResult{r.Metals, r.Crystals, r.Gems} {
		for _, m := range list {
			if m.MaterialID == materialID {
				return m.SampleFraction
			}
		}
	}
	return 0
}

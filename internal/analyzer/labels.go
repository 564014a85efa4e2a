package analyzer

import "go-mineral-analyzer/pkg/models"

// NoMaterial is the sentinel catalog index for background and indeterminate
// pixels. Using a sentinel instead of a nullable reference keeps the label
// grid a contiguous slice of fixed-size structs.
const NoMaterial = int16(-1)

// Confidence tiers, ordered. Stored as a byte to keep PixelLabel compact.
const (
	levelIndeterminate uint8 = iota
	levelLow
	levelMedium
	levelHigh
)

// PixelLabel is the per-pixel classification record. Written exactly once by
// the classification pass, read by diagnostics and segmentation.
type PixelLabel struct {
	R, G, B    uint8
	Sample     bool
	Level      uint8
	Material   int16
	H, S, V    float32
	Confidence float32
}

// ConfidenceLevel maps the stored tier to the reported categorical level.
func (p PixelLabel) ConfidenceLevel() models.ConfidenceLevel {
	switch p.Level {
	case levelHigh:
		return models.ConfidenceHigh
	case levelMedium:
		return models.ConfidenceMedium
	case levelLow:
		return models.ConfidenceLow
	default:
		return models.ConfidenceIndeterminate
	}
}

// LabelGrid is the row-major grid of pixel labels for one analysis.
type LabelGrid struct {
	Width  int
	Height int
	Cells  []PixelLabel
}

// NewLabelGrid allocates a zeroed grid. All cells start as background with
// the NoMaterial sentinel.
func NewLabelGrid(width, height int) *LabelGrid {
	cells := make([]PixelLabel, width*height)
	for i := range cells {
		cells[i].Material = NoMaterial
	}
	return &LabelGrid{Width: width, Height: height, Cells: cells}
}

// At returns a pointer to the label cell at (x, y).
func (g *LabelGrid) At(x, y int) *PixelLabel {
	return &g.Cells[y*g.Width+x]
}

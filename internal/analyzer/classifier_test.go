package analyzer

import (
	"testing"

	"go-mineral-analyzer/internal/catalog"
	"go-mineral-analyzer/pkg/models"
)

// goldPixel is a uniform gold-toned sample pixel: H~50, S~0.40, V~0.60,
// squarely inside the gold range of the default catalog.
var goldPixel = [3]uint8{153, 143, 92}

func classifyOne(t *testing.T, cat *catalog.Catalog, r, g, b uint8) PixelLabel {
	t.Helper()
	pc := newPixelClassifier(cat, DefaultConfidenceThresholds())
	var cell PixelLabel
	cell.Material = NoMaterial
	pc.classify(r, g, b, &cell)
	return cell
}

func TestClassify_GoldPixel(t *testing.T) {
	cat := catalog.Default()
	cell := classifyOne(t, cat, goldPixel[0], goldPixel[1], goldPixel[2])

	if !cell.Sample {
		t.Fatal("Expected classified pixel to be marked as sample")
	}
	if int(cell.Material) != cat.IndexOf("gold") {
		t.Errorf("Expected gold, got catalog index %d", cell.Material)
	}
	if cell.ConfidenceLevel() != models.ConfidenceHigh {
		t.Errorf("Expected high confidence, got %s", cell.ConfidenceLevel())
	}
	if cell.Confidence > maxConfidence {
		t.Errorf("Confidence %f exceeds cap %f", cell.Confidence, maxConfidence)
	}
}

func TestClassify_ConfidenceNeverExceedsCap(t *testing.T) {
	cat := catalog.Default()
	pc := newPixelClassifier(cat, DefaultConfidenceThresholds())

	var cell PixelLabel
	for r := 0; r <= 255; r += 25 {
		for g := 0; g <= 255; g += 25 {
			for b := 0; b <= 255; b += 25 {
				pc.classify(uint8(r), uint8(g), uint8(b), &cell)
				if cell.Confidence > maxConfidence {
					t.Fatalf("rgb(%d,%d,%d): confidence %f exceeds cap", r, g, b, cell.Confidence)
				}
				if cell.Material == NoMaterial && cell.Confidence != 0 {
					t.Fatalf("rgb(%d,%d,%d): indeterminate pixel carries confidence %f", r, g, b, cell.Confidence)
				}
			}
		}
	}
}

func TestClassify_LowScoreIsIndeterminate(t *testing.T) {
	// A single far-away material: a black pixel scores under the decision
	// floor and must stay unassigned rather than take the only candidate.
	cat := catalog.New([]catalog.MaterialRange{{
		ID: "warm_metal", Name: "Warm metal", Group: "test", Kind: models.KindMetal,
		HueMin: 35, HueMax: 65, SatMin: 0.25, SatMax: 0.95, ValMin: 0.40, ValMax: 1.0, Priority: 1.0,
	}})
	cell := classifyOne(t, cat, 0, 0, 0)

	if cell.Material != NoMaterial {
		t.Errorf("Expected indeterminate, got catalog index %d", cell.Material)
	}
	if cell.ConfidenceLevel() != models.ConfidenceIndeterminate {
		t.Errorf("Expected indeterminate level, got %s", cell.ConfidenceLevel())
	}
	if cell.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %f", cell.Confidence)
	}
	if !cell.Sample {
		t.Error("Indeterminate pixels are still sample pixels")
	}
}

func TestClassify_AmbiguityDegradesConfidence(t *testing.T) {
	// Two materials with identical ranges produce a zero gap: the pixel is
	// still assigned (deterministically, to the first entry) but the joint
	// (score, gap) table must refuse the High and Medium tiers.
	mk := func(id string) catalog.MaterialRange {
		return catalog.MaterialRange{
			ID: id, Name: id, Group: "test", Kind: models.KindMetal,
			HueMin: 35, HueMax: 65, SatMin: 0.25, SatMax: 0.95, ValMin: 0.40, ValMax: 1.0, Priority: 1.0,
		}
	}
	cat := catalog.New([]catalog.MaterialRange{mk("alpha"), mk("beta")})
	cell := classifyOne(t, cat, goldPixel[0], goldPixel[1], goldPixel[2])

	if int(cell.Material) != 0 {
		t.Errorf("Expected the first catalog entry on a tie, got index %d", cell.Material)
	}
	if cell.ConfidenceLevel() != models.ConfidenceLow {
		t.Errorf("Expected ambiguity to degrade to low, got %s", cell.ConfidenceLevel())
	}
}

func TestConfidenceLevel_TierTable(t *testing.T) {
	pc := newPixelClassifier(catalog.Default(), DefaultConfidenceThresholds())

	testCases := []struct {
		name       string
		score, gap float64
		want       uint8
	}{
		{"high", 0.80, 0.20, levelHigh},
		{"high boundary", 0.75, 0.15, levelHigh},
		{"high score, narrow gap", 0.80, 0.10, levelMedium},
		{"medium", 0.60, 0.10, levelMedium},
		{"medium boundary", 0.55, 0.08, levelMedium},
		{"medium score, narrow gap", 0.60, 0.02, levelLow},
		{"low", 0.45, 0.01, levelLow},
		{"low boundary", 0.40, 0.0, levelLow},
		{"below low", 0.39, 0.30, levelIndeterminate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pc.confidenceLevel(tc.score, tc.gap); got != tc.want {
				t.Errorf("confidenceLevel(%f, %f) = %d, want %d", tc.score, tc.gap, got, tc.want)
			}
		})
	}
}

func TestHueProximity_WrapAroundRange(t *testing.T) {
	ruby := catalog.MaterialRange{HueMin: 345, HueMax: 10}

	if got := hueProximity(ruby, 0); got != 1 {
		t.Errorf("Expected hue 0 inside the wrap range, got %f", got)
	}
	if got := hueProximity(ruby, 350); got != 1 {
		t.Errorf("Expected hue 350 inside the wrap range, got %f", got)
	}
	// 180 degrees away from the range center is beyond any falloff.
	if got := hueProximity(ruby, 177.5); got != 0 {
		t.Errorf("Expected zero proximity opposite the range, got %f", got)
	}
	inside := hueProximity(ruby, 5)
	near := hueProximity(ruby, 30)
	if near >= inside {
		t.Errorf("Expected proximity to decay outside the range: inside=%f near=%f", inside, near)
	}
}

func TestRangeProximity(t *testing.T) {
	testCases := []struct {
		name          string
		v, lo, hi, fo float64
		want          float64
	}{
		{"inside", 0.5, 0.3, 0.7, 0.25, 1},
		{"at lower bound", 0.3, 0.3, 0.7, 0.25, 1},
		{"below within falloff", 0.2, 0.3, 0.7, 0.25, 0.6},
		{"above within falloff", 0.8, 0.3, 0.7, 0.25, 0.6},
		{"far below", 0.0, 0.3, 0.7, 0.25, 0},
		{"at falloff edge", 0.05, 0.3, 0.7, 0.25, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := rangeProximity(tc.v, tc.lo, tc.hi, tc.fo)
			if got < tc.want-1e-9 || got > tc.want+1e-9 {
				t.Errorf("rangeProximity(%f) = %f, want %f", tc.v, got, tc.want)
			}
		})
	}
}

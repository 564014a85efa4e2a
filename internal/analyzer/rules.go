package analyzer

import "math"

// pixelSample bundles the raw and derived color of one pixel for rule
// evaluation.
type pixelSample struct {
	R, G, B uint8
	H, S, V float64
}

func (p pixelSample) spread() float64 {
	maxC := math.Max(float64(p.R), math.Max(float64(p.G), float64(p.B)))
	minC := math.Min(float64(p.R), math.Min(float64(p.G), float64(p.B)))
	return maxC - minC
}

// heuristicRule is one physical-signature check for a material. When the
// predicate reports a violation the candidate score is multiplied by the
// penalty.
type heuristicRule struct {
	name     string
	violated func(p pixelSample) bool
	penalty  float64
}

// heuristicRules maps material ids to their ordered correction rules.
// Materials without an entry are scored by the range proximity alone.
// Keeping the rules in a table makes each one independently testable and
// tunable without touching the scoring loop.
var heuristicRules = map[string][]heuristicRule{
	"gold": {
		{
			name: "red_green_above_blue",
			violated: func(p pixelSample) bool {
				return int(p.R) <= int(p.B)+20 || int(p.G) <= int(p.B)+20
			},
			penalty: 0.3,
		},
		{
			name: "red_green_balance",
			violated: func(p pixelSample) bool {
				d := int(p.R) - int(p.G)
				return d > 40 || d < -40
			},
			penalty: 0.5,
		},
		{
			name:     "min_brightness",
			violated: func(p pixelSample) bool { return p.V < 0.35 },
			penalty:  0.4,
		},
		{
			name:     "min_saturation",
			violated: func(p pixelSample) bool { return p.S < 0.2 },
			penalty:  0.5,
		},
		{
			name:     "warm_hue_band",
			violated: func(p pixelSample) bool { return p.H < 30 || p.H > 70 },
			penalty:  0.35,
		},
	},
	"copper": {
		{
			name: "red_dominant",
			violated: func(p pixelSample) bool {
				return int(p.R) <= int(p.G)+25 || int(p.R) <= int(p.B)+25
			},
			penalty: 0.3,
		},
	},
	"platinum": {
		{
			name:     "near_neutral",
			violated: func(p pixelSample) bool { return p.spread() > 30 },
			penalty:  0.35,
		},
		{
			// A warm, saturated pixel in the gold band is gold, not platinum.
			name: "not_gold_band",
			violated: func(p pixelSample) bool {
				return p.H >= 35 && p.H <= 65 && p.S > 0.15
			},
			penalty: 0.6,
		},
	},
	"silver": {
		{
			name:     "very_high_value",
			violated: func(p pixelSample) bool { return p.V < 0.75 },
			penalty:  0.3,
		},
		{
			name:     "very_low_saturation",
			violated: func(p pixelSample) bool { return p.S > 0.12 },
			penalty:  0.25,
		},
		{
			name:     "near_neutral",
			violated: func(p pixelSample) bool { return p.spread() > 20 },
			penalty:  0.4,
		},
	},
}

// applyHeuristics multiplies the base score by the penalty of every violated
// rule for the material. Materials with no documented rules pass through.
func applyHeuristics(materialID string, p pixelSample, score float64) float64 {
	for _, rule := range heuristicRules[materialID] {
		if rule.violated(p) {
			score *= rule.penalty
		}
	}
	return score
}

package analyzer

// FusedScore is the outcome of the score-fusion step for one particle.
type FusedScore struct {
	MaterialID string
	Confidence float64
	RawScore   float64
}

// ScoreFuser is the seam where a second, independent classifier's opinion
// can be blended with the heuristic score without modifying the pipeline's
// control flow.
type ScoreFuser interface {
	Fuse(materialID string, heuristicScore float64) FusedScore
	Name() string
}

// PassthroughFuser returns the heuristic values unchanged. It is the default
// strategy until an external second-opinion classifier is integrated.
type PassthroughFuser struct{}

// NewPassthroughFuser creates the default pass-through fusion strategy.
func NewPassthroughFuser() ScoreFuser {
	return PassthroughFuser{}
}

// Fuse returns the heuristic material and score untouched.
func (PassthroughFuser) Fuse(materialID string, heuristicScore float64) FusedScore {
	return FusedScore{
		MaterialID: materialID,
		Confidence: heuristicScore,
		RawScore:   heuristicScore,
	}
}

// Name identifies the strategy in logs.
func (PassthroughFuser) Name() string { return "passthrough" }

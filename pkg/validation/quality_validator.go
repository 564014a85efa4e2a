// Package validation derives quality statuses and human-readable issues
// from analysis diagnostics.
package validation

import (
	"fmt"

	"go-mineral-analyzer/pkg/models"
)

// QualityThresholds defines the configurable boundaries for quality
// validation.
type QualityThresholds struct {
	// Quality index boundaries for the status enum.
	OfficialIndex    float64
	PreliminaryIndex float64

	// Sub-score boundaries below which an issue is reported.
	MinFocusScore    float64
	MinExposureScore float64
	MinMaskScore     float64

	// Clipping fraction above which exposure is flagged regardless of score.
	MaxClippingFraction float64
}

// DefaultQualityThresholds returns the calibrated defaults.
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		OfficialIndex:       85.0,
		PreliminaryIndex:    70.0,
		MinFocusScore:       40.0,
		MinExposureScore:    50.0,
		MinMaskScore:        50.0,
		MaxClippingFraction: 0.1,
	}
}

// QualityIssue is one validation finding attached to the result summary.
type QualityIssue struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	Severity    string  `json:"severity"` // "error", "warning"
	ActualValue float64 `json:"actual_value,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// QualityValidator maps diagnostics to a status and a list of issues.
type QualityValidator struct {
	thresholds QualityThresholds
}

// NewQualityValidator creates a validator with default thresholds.
func NewQualityValidator() *QualityValidator {
	return &QualityValidator{thresholds: DefaultQualityThresholds()}
}

// NewQualityValidatorWithThresholds creates a validator with custom
// thresholds.
func NewQualityValidatorWithThresholds(thresholds QualityThresholds) *QualityValidator {
	return &QualityValidator{thresholds: thresholds}
}

// StatusFor maps a quality index to the single-pass status enum:
// Official iff index >= 85, Preliminary iff 70 <= index < 85, else Invalid.
func (qv *QualityValidator) StatusFor(index float64) models.QualityStatus {
	switch {
	case index >= qv.thresholds.OfficialIndex:
		return models.StatusOfficial
	case index >= qv.thresholds.PreliminaryIndex:
		return models.StatusPreliminary
	default:
		return models.StatusInvalid
	}
}

// Validate reports quality issues for the given diagnostics block.
func (qv *QualityValidator) Validate(d models.Diagnostics) []QualityIssue {
	var issues []QualityIssue

	if d.FocusScore < qv.thresholds.MinFocusScore {
		issues = append(issues, QualityIssue{
			Type:        "low_focus",
			Message:     "Image appears out of focus. Refocus the microscope and recapture.",
			Severity:    "error",
			ActualValue: d.FocusScore,
			Threshold:   qv.thresholds.MinFocusScore,
		})
	}
	if d.ExposureScore < qv.thresholds.MinExposureScore || d.ClippingFraction > qv.thresholds.MaxClippingFraction {
		issues = append(issues, QualityIssue{
			Type:        "clipping",
			Message:     "Too many near-black or near-white sample pixels. Adjust illumination.",
			Severity:    "error",
			ActualValue: d.ClippingFraction,
			Threshold:   qv.thresholds.MaxClippingFraction,
		})
	}
	if d.MaskScore < qv.thresholds.MinMaskScore {
		issues = append(issues, QualityIssue{
			Type:        "mask_coverage",
			Message:     "Sample coverage is outside the usable range. Reposition the specimen.",
			Severity:    "warning",
			ActualValue: d.MaskScore,
			Threshold:   qv.thresholds.MinMaskScore,
		})
	}
	if d.SamplePixels == 0 {
		issues = append(issues, QualityIssue{
			Type:     "empty_mask",
			Message:  "The sample mask contains no foreground pixels.",
			Severity: "error",
		})
	}

	return issues
}

// ConvertIssuesToMessages flattens issues into printable strings for the
// result summary.
func (qv *QualityValidator) ConvertIssuesToMessages(issues []QualityIssue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, fmt.Sprintf("[%s] %s", issue.Severity, issue.Message))
	}
	return messages
}

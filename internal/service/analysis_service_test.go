package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"

	"go-mineral-analyzer/internal/analyzer"
	"go-mineral-analyzer/internal/catalog"
	apperrors "go-mineral-analyzer/internal/errors"
	"go-mineral-analyzer/internal/observer"
	"go-mineral-analyzer/pkg/models"
)

type stubRepository struct {
	img      image.Image
	imgErr   error
	mask     *analyzer.Mask
	maskErr  error
	validErr error
}

func (s *stubRepository) FetchImage(_ context.Context, _ string) (image.Image, error) {
	return s.img, s.imgErr
}

func (s *stubRepository) FetchMask(_ context.Context, _ string, _, _ int) (*analyzer.Mask, error) {
	return s.mask, s.maskErr
}

func (s *stubRepository) ValidateImageURL(_ string) error {
	return s.validErr
}

type stubStrategy struct {
	name     string
	result   *models.AnalysisResult
	err      error
	runs     int
	lastOpts analyzer.AnalysisOptions
}

func (s *stubStrategy) Run(_ context.Context, _ image.Image, _ *analyzer.Mask, opts analyzer.AnalysisOptions) (*models.AnalysisResult, error) {
	s.runs++
	s.lastOpts = opts
	return s.result, s.err
}

func (s *stubStrategy) Name() string { return s.name }

type recordingObserver struct {
	events []observer.AnalysisEvent
}

func (r *recordingObserver) OnEvent(_ context.Context, event observer.AnalysisEvent) {
	r.events = append(r.events, event)
}

func (r *recordingObserver) GetObserverName() string { return "recording" }

func newTestService(repo *stubRepository, single, verified *stubStrategy, rec *recordingObserver) SampleAnalysisService {
	publisher := observer.NewEventPublisher()
	if rec != nil {
		publisher.Subscribe(rec)
	}
	return NewSampleAnalysisService(repo, single, verified, catalog.Default(), publisher, analyzer.DefaultOptions())
}

func validRequest() AnalysisRequest {
	return AnalysisRequest{
		ImageURL: "https://example.com/capture.png",
		MaskURL:  "https://example.com/mask.png",
	}
}

func TestAnalyze_SinglePassByDefault(t *testing.T) {
	repo := &stubRepository{
		img:  image.NewRGBA(image.Rect(0, 0, 4, 4)),
		mask: analyzer.NewMask(4, 4),
	}
	single := &stubStrategy{name: "single_pass", result: &models.AnalysisResult{ID: "a1", Status: models.StatusOfficial}}
	verified := &stubStrategy{name: "verified", result: &models.AnalysisResult{ID: "a2"}}
	rec := &recordingObserver{}
	svc := newTestService(repo, single, verified, rec)

	result, err := svc.Analyze(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.ID != "a1" {
		t.Errorf("Expected the single-pass result, got %s", result.ID)
	}
	if single.runs != 1 || verified.runs != 0 {
		t.Errorf("Expected only the single-pass strategy to run: single=%d verified=%d", single.runs, verified.runs)
	}

	if len(rec.events) != 2 {
		t.Fatalf("Expected started and completed events, got %d", len(rec.events))
	}
	if rec.events[0].EventType != observer.AnalysisStarted || rec.events[1].EventType != observer.AnalysisCompleted {
		t.Errorf("Unexpected event sequence: %s, %s", rec.events[0].EventType, rec.events[1].EventType)
	}
}

func TestAnalyze_VerifyPicksVerifiedStrategy(t *testing.T) {
	repo := &stubRepository{
		img:  image.NewRGBA(image.Rect(0, 0, 4, 4)),
		mask: analyzer.NewMask(4, 4),
	}
	single := &stubStrategy{name: "single_pass", result: &models.AnalysisResult{ID: "a1"}}
	verified := &stubStrategy{name: "verified", result: &models.AnalysisResult{ID: "a2", Status: models.StatusOfficialRechecked}}
	svc := newTestService(repo, single, verified, nil)

	req := validRequest()
	req.Verify = true
	req.TargetMaterial = "copper"

	result, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.ID != "a2" {
		t.Errorf("Expected the verified result, got %s", result.ID)
	}
	if verified.runs != 1 || single.runs != 0 {
		t.Errorf("Expected only the verified strategy to run: single=%d verified=%d", single.runs, verified.runs)
	}
	if verified.lastOpts.TargetMaterial != "copper" {
		t.Errorf("Expected the target material override, got %s", verified.lastOpts.TargetMaterial)
	}
}

func TestAnalyze_InvalidURLIsValidationError(t *testing.T) {
	repo := &stubRepository{validErr: errors.New("bad scheme")}
	svc := newTestService(repo, &stubStrategy{}, &stubStrategy{}, nil)

	_, err := svc.Analyze(context.Background(), validRequest())
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected a validation error type, got %v", err)
	}
}

func TestAnalyze_FetchFailureIsNetworkError(t *testing.T) {
	repo := &stubRepository{imgErr: fmt.Errorf("connection refused")}
	single := &stubStrategy{}
	rec := &recordingObserver{}
	svc := newTestService(repo, single, &stubStrategy{}, rec)

	_, err := svc.Analyze(context.Background(), validRequest())
	if err == nil {
		t.Fatal("Expected a network error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		t.Errorf("Expected a network error type, got %v", err)
	}
	if single.runs != 0 {
		t.Error("Expected the pipeline not to run after a fetch failure")
	}

	last := rec.events[len(rec.events)-1]
	if last.EventType != observer.AnalysisFailed || last.ErrorMessage == "" {
		t.Errorf("Expected a failure event with a message, got %+v", last)
	}
}

func TestAnalyze_MaskFailureIsValidationError(t *testing.T) {
	repo := &stubRepository{
		img:     image.NewRGBA(image.Rect(0, 0, 4, 4)),
		maskErr: fmt.Errorf("dimensions do not match"),
	}
	svc := newTestService(repo, &stubStrategy{}, &stubStrategy{}, nil)

	_, err := svc.Analyze(context.Background(), validRequest())
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected a validation error type, got %v", err)
	}
}

func TestAnalyze_PipelineFailureIsProcessingError(t *testing.T) {
	repo := &stubRepository{
		img:  image.NewRGBA(image.Rect(0, 0, 4, 4)),
		mask: analyzer.NewMask(4, 4),
	}
	single := &stubStrategy{err: fmt.Errorf("boom")}
	svc := newTestService(repo, single, &stubStrategy{}, nil)

	_, err := svc.Analyze(context.Background(), validRequest())
	if !apperrors.IsType(err, apperrors.ErrorTypeProcessing) {
		t.Errorf("Expected a processing error type, got %v", err)
	}
}

func TestCatalog_ExposesEntries(t *testing.T) {
	repo := &stubRepository{}
	svc := newTestService(repo, &stubStrategy{}, &stubStrategy{}, nil)

	entries := svc.Catalog()
	if len(entries) == 0 {
		t.Fatal("Expected catalog entries")
	}
	found := false
	for _, e := range entries {
		if e.ID == "gold" {
			found = true
		}
	}
	if !found {
		t.Error("Expected gold in the exposed catalog")
	}
}

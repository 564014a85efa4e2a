package service

import (
	"context"
	"time"

	"go-mineral-analyzer/internal/analyzer"
	"go-mineral-analyzer/internal/catalog"
	apperrors "go-mineral-analyzer/internal/errors"
	"go-mineral-analyzer/internal/observer"
	"go-mineral-analyzer/internal/repository"
	"go-mineral-analyzer/internal/strategy"
	"go-mineral-analyzer/pkg/models"
)

// AnalysisRequest carries everything one analysis call needs.
type AnalysisRequest struct {
	ImageURL       string
	MaskURL        string
	Verify         bool   // run the reanalysis protocol on Invalid results
	TargetMaterial string // convergence target, empty means configured default
}

// SampleAnalysisService coordinates fetching, analysis and event publishing.
type SampleAnalysisService interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*models.AnalysisResult, error)
	Catalog() []catalog.MaterialRange
	ValidateImageURL(imageURL string) error
}

type sampleAnalysisService struct {
	repo        repository.SampleRepository
	singlePass  strategy.AnalysisStrategy
	verified    strategy.AnalysisStrategy
	cat         *catalog.Catalog
	publisher   observer.Subject
	defaultOpts analyzer.AnalysisOptions
}

// NewSampleAnalysisService wires the repository, strategies and observers.
func NewSampleAnalysisService(
	repo repository.SampleRepository,
	singlePass strategy.AnalysisStrategy,
	verified strategy.AnalysisStrategy,
	cat *catalog.Catalog,
	publisher observer.Subject,
	defaultOpts analyzer.AnalysisOptions,
) SampleAnalysisService {
	return &sampleAnalysisService{
		repo:        repo,
		singlePass:  singlePass,
		verified:    verified,
		cat:         cat,
		publisher:   publisher,
		defaultOpts: defaultOpts,
	}
}

func (s *sampleAnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*models.AnalysisResult, error) {
	start := time.Now()
	s.notify(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: start,
		ImageURL:  req.ImageURL,
	})

	result, err := s.analyze(ctx, req)
	if err != nil {
		s.notify(ctx, observer.AnalysisEvent{
			EventType:      observer.AnalysisFailed,
			Timestamp:      time.Now(),
			ImageURL:       req.ImageURL,
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
		})
		return nil, err
	}

	s.notify(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Timestamp:      time.Now(),
		ImageURL:       req.ImageURL,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"analysis_id":   result.ID,
			"status":        result.Status,
			"quality_index": result.QualityIndex,
			"particles":     len(result.Particles),
		},
	})
	return result, nil
}

func (s *sampleAnalysisService) analyze(ctx context.Context, req AnalysisRequest) (*models.AnalysisResult, error) {
	if err := s.ValidateImageURL(req.ImageURL); err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}
	if err := s.ValidateImageURL(req.MaskURL); err != nil {
		return nil, apperrors.NewValidationError("invalid mask URL", err)
	}

	img, err := s.repo.FetchImage(ctx, req.ImageURL)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	bounds := img.Bounds()

	mask, err := s.repo.FetchMask(ctx, req.MaskURL, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, apperrors.NewValidationError("failed to load sample mask", err)
	}

	opts := s.defaultOpts
	if req.TargetMaterial != "" {
		opts = opts.WithTargetMaterial(req.TargetMaterial)
	}

	strat := s.singlePass
	if req.Verify {
		strat = s.verified
	}

	result, err := strat.Run(ctx, img, mask, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.NewTimeoutError("analysis cancelled", err)
		}
		return nil, apperrors.NewProcessingError("analysis failed", err)
	}
	return result, nil
}

func (s *sampleAnalysisService) Catalog() []catalog.MaterialRange {
	return s.cat.Entries()
}

func (s *sampleAnalysisService) ValidateImageURL(imageURL string) error {
	return s.repo.ValidateImageURL(imageURL)
}

func (s *sampleAnalysisService) notify(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

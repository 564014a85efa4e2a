package repository

import (
	"context"
	"fmt"
	"image"

	"go-mineral-analyzer/internal/analyzer"
	"go-mineral-analyzer/internal/storage"
	"go-mineral-analyzer/pkg/validation"
)

// fetcherSampleRepository implements SampleRepository over an ImageFetcher
// (HTTP or Azure blob).
type fetcherSampleRepository struct {
	fetcher   storage.ImageFetcher
	validator *validation.URLValidator
}

// NewSampleRepository creates a repository over the given fetcher.
func NewSampleRepository(fetcher storage.ImageFetcher) SampleRepository {
	return &fetcherSampleRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
	}
}

func (r *fetcherSampleRepository) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	return r.fetcher.FetchImage(ctx, imageURL)
}

func (r *fetcherSampleRepository) FetchMask(ctx context.Context, maskURL string, width, height int) (*analyzer.Mask, error) {
	maskImg, err := r.fetcher.FetchImage(ctx, maskURL)
	if err != nil {
		return nil, fmt.Errorf("fetch mask: %w", err)
	}
	mask, err := storage.MaskFromImage(maskImg, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaskMismatch, err)
	}
	return mask, nil
}

func (r *fetcherSampleRepository) ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return ErrInvalidImageURL
	}
	return r.validator.Validate(imageURL)
}

package repository

import (
	"context"
	"image"

	"go-mineral-analyzer/internal/analyzer"
)

// SampleRepository defines data access for microscope captures and their
// precomputed sample masks.
type SampleRepository interface {
	// FetchImage retrieves a decoded capture from a URL.
	FetchImage(ctx context.Context, imageURL string) (image.Image, error)

	// FetchMask retrieves and decodes a sample mask, validating that it
	// matches the given capture dimensions.
	FetchMask(ctx context.Context, maskURL string, width, height int) (*analyzer.Mask, error)

	// ValidateImageURL validates if the provided URL is acceptable.
	ValidateImageURL(imageURL string) error
}

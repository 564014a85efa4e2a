package factory

import (
	"fmt"

	"go-mineral-analyzer/internal/analyzer"
	"go-mineral-analyzer/internal/config"
	"go-mineral-analyzer/internal/storage"
)

// FuserType selects the score-fusion strategy for particle records.
type FuserType string

const (
	// PassthroughFuser returns heuristic scores unchanged.
	PassthroughFuser FuserType = "passthrough"
)

// StorageType selects the capture storage backend.
type StorageType string

const (
	// HTTPStorage fetches captures over plain HTTP(S).
	HTTPStorage StorageType = "http"
	// AzureStorage fetches captures from Azure blob storage.
	AzureStorage StorageType = "azure"
)

// NewScoreFuser creates the configured fusion strategy. Unknown names are an
// error so a typo in configuration fails fast rather than silently running
// pass-through.
func NewScoreFuser(fuserType FuserType) (analyzer.ScoreFuser, error) {
	switch fuserType {
	case PassthroughFuser, "":
		return analyzer.NewPassthroughFuser(), nil
	default:
		return nil, fmt.Errorf("unsupported score fuser: %s", fuserType)
	}
}

// NewImageFetcher creates the configured storage backend.
func NewImageFetcher(storageType StorageType, cfg *config.Config) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage, "":
		return storage.NewHTTPImageFetcher(), nil
	case AzureStorage:
		blob, err := storage.NewAzureStorage(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, fmt.Errorf("azure storage: %w", err)
		}
		return storage.NewAzureImageFetcher(blob), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

package factory

import (
	"testing"

	"go-mineral-analyzer/internal/config"
)

func TestNewScoreFuser(t *testing.T) {
	fuser, err := NewScoreFuser(PassthroughFuser)
	if err != nil {
		t.Fatalf("Expected the passthrough fuser, got %v", err)
	}
	if fuser.Name() != "passthrough" {
		t.Errorf("Unexpected fuser: %s", fuser.Name())
	}

	if _, err := NewScoreFuser(""); err != nil {
		t.Errorf("Expected the empty name to default to passthrough, got %v", err)
	}

	if _, err := NewScoreFuser("neural"); err == nil {
		t.Error("Expected an error for an unknown fuser")
	}
}

func TestNewImageFetcher(t *testing.T) {
	cfg := &config.Config{}

	if _, err := NewImageFetcher(HTTPStorage, cfg); err != nil {
		t.Errorf("Expected the HTTP fetcher, got %v", err)
	}
	if _, err := NewImageFetcher("", cfg); err != nil {
		t.Errorf("Expected the empty type to default to HTTP, got %v", err)
	}
	if _, err := NewImageFetcher("s3", cfg); err == nil {
		t.Error("Expected an error for an unknown storage type")
	}
}

package storage

import (
	"context"
	"fmt"
	"image"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// BlobStorage fetches microscope captures archived in Azure blob storage.
// Lab instruments upload captures and masks to a container; the analyzer
// addresses them as https://<account>.blob.core.windows.net/<container>?blob=<name>.
type BlobStorage interface {
	GetImage(ctx context.Context, blobURL string) (image.Image, error)
}

type azureStorage struct {
	client *azblob.Client
}

// NewAzureStorage creates a blob-backed image source using shared-key
// credentials.
func NewAzureStorage(accountName, accountKey string) (BlobStorage, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &azureStorage{client: client}, nil
}

func (s *azureStorage) GetImage(ctx context.Context, blobURL string) (image.Image, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blob URL: %w", err)
	}
	if len(parsedURL.Path) < 2 {
		return nil, fmt.Errorf("blob URL missing container: %s", blobURL)
	}
	containerName := parsedURL.Path[1:]
	blobName := parsedURL.Query().Get("blob")
	if blobName == "" {
		return nil, fmt.Errorf("blob URL missing blob query parameter: %s", blobURL)
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	retryReader := downloadResponse.Body
	defer retryReader.Close()

	img, _, err := image.Decode(retryReader)
	return img, err
}

// azureFetcher adapts BlobStorage to the ImageFetcher interface.
type azureFetcher struct {
	blob BlobStorage
}

// NewAzureImageFetcher wraps blob storage as an ImageFetcher.
func NewAzureImageFetcher(blob BlobStorage) ImageFetcher {
	return &azureFetcher{blob: blob}
}

func (a *azureFetcher) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	return a.blob.GetImage(ctx, imageURL)
}

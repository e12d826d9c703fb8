package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

const (
	// Well-known Azurite development account.
	azuriteAccountName = "devstoreaccount1"
	azuriteAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// BlobService reads uploaded order exports from and publishes filtered
// exports to Azure Blob Storage.
type BlobService struct {
	serviceURL string
	client     *azblob.Client
}

// NewBlobService connects to the blob endpoint at serviceURL. Plain http
// endpoints are treated as a local Azurite emulator.
func NewBlobService(serviceURL string) (*BlobService, error) {
	if serviceURL == "" {
		return nil, fmt.Errorf("blob service URL is required")
	}

	slog.Info("initializing blob service", "blob_url", serviceURL)
	var client *azblob.Client

	if isLocal(serviceURL) {
		slog.Info("using Azurite shared key credentials for blob service")
		cred, err := azblob.NewSharedKeyCredential(azuriteAccountName, azuriteAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client with shared key: %w", err)
		}
	} else {
		cred, err := newDefaultAzureCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		client, err = azblob.NewClient(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
	}

	slog.Info("blob service initialized successfully")
	return &BlobService{serviceURL: serviceURL, client: client}, nil
}

func isLocal(serviceURL string) bool {
	return strings.HasPrefix(serviceURL, "http://")
}

func newDefaultAzureCredential() (azcore.TokenCredential, error) {
	slog.Info("using default Azure credentials")
	return azidentity.NewDefaultAzureCredential(nil)
}

// DownloadText returns the content of a blob as a string.
func (s *BlobService) DownloadText(ctx context.Context, containerName, blobName string) (string, error) {
	slog.Info("downloading blob", "container", containerName, "blob_name", blobName)
	resp, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		slog.Error("failed to download blob", "container", containerName, "blob_name", blobName, "error", err)
		return "", fmt.Errorf("failed to download blob %s/%s: %w", containerName, blobName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read blob content: %w", err)
	}

	slog.Info("downloaded blob", "container", containerName, "blob_name", blobName, "size_bytes", len(data))
	return string(data), nil
}

// UploadBytes writes data to a blob with the given content type, creating
// the container when it does not exist.
func (s *BlobService) UploadBytes(ctx context.Context, containerName, blobName, contentType string, data []byte) error {
	slog.Info("uploading blob", "container", containerName, "blob_name", blobName, "size_bytes", len(data))
	_, err := s.client.CreateContainer(ctx, containerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		slog.Warn("failed to create container", "container", containerName, "error", err)
	}

	opts := &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)},
	}
	if _, err := s.client.UploadBuffer(ctx, containerName, blobName, data, opts); err != nil {
		slog.Error("failed to upload blob", "container", containerName, "blob_name", blobName, "error", err)
		return fmt.Errorf("failed to upload blob %s/%s: %w", containerName, blobName, err)
	}
	slog.Info("uploaded blob", "container", containerName, "blob_name", blobName)
	return nil
}

// ParseBlobPath splits "container/path/to/blob" into container and blob name.
func ParseBlobPath(path string) (string, string, error) {
	container, name, ok := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if !ok || container == "" || name == "" {
		return "", "", fmt.Errorf("invalid blob path %q: want container/name", path)
	}
	return container, name, nil
}

package handler

import "context"

// BlobClient defines the blob storage operations used by handlers.
type BlobClient interface {
	DownloadText(ctx context.Context, containerName, blobName string) (string, error)
	UploadBytes(ctx context.Context, containerName, blobName, contentType string, data []byte) error
}

package handler

import "context"

type MockBlobClient struct {
	DownloadTextFunc func(ctx context.Context, containerName, blobName string) (string, error)
	UploadBytesFunc  func(ctx context.Context, containerName, blobName, contentType string, data []byte) error
}

func (m *MockBlobClient) DownloadText(ctx context.Context, containerName, blobName string) (string, error) {
	if m.DownloadTextFunc != nil {
		return m.DownloadTextFunc(ctx, containerName, blobName)
	}
	return "", nil
}

func (m *MockBlobClient) UploadBytes(ctx context.Context, containerName, blobName, contentType string, data []byte) error {
	if m.UploadBytesFunc != nil {
		return m.UploadBytesFunc(ctx, containerName, blobName, contentType, data)
	}
	return nil
}

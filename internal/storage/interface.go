package storage

import (
	"context"
	"io"
	"time"
)

// Interface abstracts the evidence-image store (panel photos and rendered
// signatures). Only keys and URLs cross this boundary; no binary content is
// ever held by the services.
type Interface interface {
	// GeneratePresignedUploadURL generates a presigned URL for uploading
	// key: storage path/key for the file
	// contentType: MIME type (e.g., "image/jpeg")
	// expiresIn: how long the URL should be valid
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL generates a presigned URL for downloading
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error

	// SaveFile and ReadFile back the mock implementation's HTTP handlers;
	// a cloud backend would serve uploads and downloads directly.
	SaveFile(key string, reader io.Reader) error
	ReadFile(key string) (io.ReadCloser, error)
}

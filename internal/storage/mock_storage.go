package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MockStorageService implements evidence storage on the local filesystem.
// This is for demo/testing without S3 or Azure Blob Storage.
type MockStorageService struct {
	baseURL    string // Server URL (e.g., "http://localhost:8080")
	uploadsDir string // Local directory for uploads (e.g., "./uploads")
	imagesDir  string // Subdirectory for evidence images
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	imagesDir := filepath.Join(uploadsDir, "images")

	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &MockStorageService{
		baseURL:    baseURL,
		uploadsDir: uploadsDir,
		imagesDir:  imagesDir,
	}, nil
}

// GeneratePresignedUploadURL generates a mock upload URL pointing to the server.
// The key is encoded in the query parameter so the upload handler knows where
// to save.
func (m *MockStorageService) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	uploadToken := uuid.New().String()
	uploadURL := fmt.Sprintf("%s/api/v1/upload/%s?key=%s", m.baseURL, uploadToken, key)
	return uploadURL, nil
}

// GeneratePresignedDownloadURL generates a mock download URL
func (m *MockStorageService) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	downloadURL := fmt.Sprintf("%s/api/v1/download/%s?key=%s", m.baseURL, encodeKey(key), key)
	return downloadURL, nil
}

// FileExists checks if file exists in local filesystem
func (m *MockStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(m.imagesDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

// DeleteFile deletes file from local filesystem
func (m *MockStorageService) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(m.imagesDir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// SaveFile saves uploaded file to local filesystem
func (m *MockStorageService) SaveFile(key string, reader io.Reader) error {
	fullPath := filepath.Join(m.imagesDir, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadFile reads file from local filesystem
func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(m.imagesDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// encodeKey creates a URL-safe hash of the key
func encodeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}

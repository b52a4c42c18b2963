package http

import (
	"io"
	"net/http"
	"path/filepath"

	"stc-compliance-backend/internal/storage"
)

// EvidenceUploadHandler serves the mock storage presigned URLs: panel photos
// and signature images are PUT to upload URLs and fetched from download URLs.
type EvidenceUploadHandler struct {
	mockStorage *storage.MockStorageService
}

func NewEvidenceUploadHandler(mockStorage *storage.MockStorageService) *EvidenceUploadHandler {
	return &EvidenceUploadHandler{mockStorage: mockStorage}
}

// HandleMockUpload handles HTTP PUT requests to mock presigned URLs
func (h *EvidenceUploadHandler) HandleMockUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/gif" {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.mockStorage.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	// Return success (mimic S3 response)
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleMockDownload handles HTTP GET requests to download evidence images
func (h *EvidenceUploadHandler) HandleMockDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".pdf":
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}

package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// RemoteStorage stores files in an HTTP object store (Supabase-style API).
// Objects are written to {endpoint}/storage/v1/object/{bucket}/{name} and
// served from the public object URL, which is what gets stored as reference.
type RemoteStorage struct {
	endpoint   string
	bucket     string
	apiKey     string
	httpClient *http.Client
}

// NewRemoteStorage creates a RemoteStorage instance.
func NewRemoteStorage(endpoint, bucket, apiKey string) *RemoteStorage {
	return &RemoteStorage{
		endpoint: strings.TrimRight(endpoint, "/"),
		bucket:   bucket,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Save validates and uploads a file to the object store.
func (rs *RemoteStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := ValidateUpload(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectName := uuid.New().String() + ext

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", rs.endpoint, rs.bucket, url.PathEscape(objectName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, buf)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+rs.apiKey)
	req.Header.Set("Content-Type", fileHeader.Header.Get("Content-Type"))

	resp, err := rs.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("object store upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("object store upload failed: status %d body %s", resp.StatusCode, string(body))
	}

	reference := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", rs.endpoint, rs.bucket, url.PathEscape(objectName))
	logger.Info().Str("filename", fileHeader.Filename).Str("object", objectName).Msg("File uploaded to object store")
	return reference, nil
}

// Open fetches the stored bytes from the public object URL.
func (rs *RemoteStorage) Open(ctx context.Context, reference string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reference, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := rs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("object store download failed: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, apperrors.ErrFileNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, fmt.Errorf("object store download failed: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// URL returns the public URL of a stored object. Remote references are
// already full URLs.
func (rs *RemoteStorage) URL(reference string) string {
	return reference
}

// Delete removes an object from the store, retrying a bounded number of
// times. A missing object counts as a successful delete.
func (rs *RemoteStorage) Delete(ctx context.Context, reference string) error {
	if reference == "" {
		return nil
	}

	objectName := reference
	if i := strings.LastIndex(reference, "/"); i >= 0 {
		objectName = reference[i+1:]
	}

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", rs.endpoint, rs.bucket, objectName)

	return deleteWithRetry(ctx, reference, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
		if err != nil {
			return fmt.Errorf("failed to build delete request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+rs.apiKey)

		resp, err := rs.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("object store delete failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("object store delete failed: status %d", resp.StatusCode)
		}
		return nil
	})
}

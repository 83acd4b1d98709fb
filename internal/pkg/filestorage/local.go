package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files are stored
	baseURL  string // The base URL to access the stored files
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is prepended to returned references so they are directly fetchable.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory %s: %w", basePath, err)
	}

	logger.Info().Str("path", absPath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: absPath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save validates and stores an uploaded file under a unique name.
// Either the returned reference is retrievable afterward, or an error is
// returned and the partial artifact is removed.
func (ls *LocalStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := ValidateUpload(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Remove the partially written file so no dangling reference survives
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	reference := ls.baseURL + "/" + uniqueFilename
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("reference", reference).Msg("File saved successfully")
	return reference, nil
}

// Open returns the stored bytes for a reference. The resolved path must stay
// inside the storage root; anything else is rejected.
func (ls *LocalStorage) Open(ctx context.Context, reference string) (io.ReadCloser, error) {
	physicalPath, err := ls.resolve(reference)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(physicalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// URL returns the publicly served URL for a reference.
func (ls *LocalStorage) URL(reference string) string {
	if strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://") {
		return reference
	}
	return ls.baseURL + "/" + path.Base(reference)
}

// Delete removes a file from the storage filesystem. It accepts the reference
// as stored on the owning record. Missing files count as a successful delete.
func (ls *LocalStorage) Delete(ctx context.Context, reference string) error {
	if reference == "" {
		return nil
	}

	physicalPath, err := ls.resolve(reference)
	if err != nil {
		return err
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	return deleteWithRetry(ctx, reference, func() error {
		if err := os.Remove(physicalPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	})
}

// resolve maps a reference to a physical path inside the storage root.
// References are URLs or bare filenames; only the final path element is used,
// and the result must not escape basePath.
func (ls *LocalStorage) resolve(reference string) (string, error) {
	filename := path.Base(strings.TrimSpace(reference))
	if filename == "" || filename == "." || filename == "/" || filename == ".." {
		return "", apperrors.ErrAccessDenied
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	// filepath.Join cleans the path, but keep an explicit containment check
	absPath, err := filepath.Abs(physicalPath)
	if err != nil {
		return "", apperrors.ErrAccessDenied
	}
	if !strings.HasPrefix(absPath, ls.basePath+string(os.PathSeparator)) {
		return "", apperrors.ErrAccessDenied
	}

	return absPath, nil
}

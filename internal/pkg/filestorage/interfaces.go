package filestorage

import (
	"context"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// MaxFileSize is the upload size cap (10 MiB).
const MaxFileSize = 10 << 20

// deleteRetryAttempts bounds the synchronous retry loop for file deletion.
const deleteRetryAttempts = 3

// allowedMIMETypes is the set of accepted upload content types.
var allowedMIMETypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
	"image/jpg":       {},
}

// Storage persists uploaded binaries and hands back opaque references.
// A reference returned by Save is durably retrievable via Open or URL;
// Delete is best-effort and idempotent.
type Storage interface {
	// Save validates and stores the uploaded file, returning its reference.
	Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
	// Open returns the stored bytes for a reference.
	Open(ctx context.Context, reference string) (io.ReadCloser, error)
	// URL returns the publicly reachable URL for a reference.
	URL(reference string) string
	// Delete removes the stored bytes. Missing files are not an error.
	Delete(ctx context.Context, reference string) error
}

// ValidateUpload checks the declared content type and size of an upload
// before any bytes are written.
func ValidateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.NewValidationError("file is required")
	}

	if fileHeader.Size > MaxFileSize {
		return apperrors.ErrFileTooLarge
	}

	contentType := strings.ToLower(strings.TrimSpace(fileHeader.Header.Get("Content-Type")))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if _, ok := allowedMIMETypes[contentType]; !ok {
		return apperrors.ErrUnsupportedFileType
	}

	return nil
}

// deleteWithRetry runs fn up to deleteRetryAttempts times with a short pause
// between attempts. The final error is returned for the caller to log;
// deletion failures never propagate to the owning record's removal.
func deleteWithRetry(ctx context.Context, reference string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= deleteRetryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		logger.Warn().Err(err).Str("reference", reference).Int("attempt", attempt).Msg("File delete attempt failed")

		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return err
}

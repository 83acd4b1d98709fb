package services

import (
	"context"
	"path"
	"strings"

	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/filestorage"
	"github.com/mertc/notebook/internal/pkg/logger"
	"github.com/mertc/notebook/internal/pkg/pdftext"
	"github.com/mertc/notebook/internal/pkg/summarizer"
)

// imageSummaryUnavailable is returned for image-backed notes instead of
// calling the upstream model.
const imageSummaryUnavailable = "Image summarization is currently unavailable as the vision models have been decommissioned."

// SummarizeService produces AI summaries of raw text or stored note files.
type SummarizeService interface {
	Summarize(ctx context.Context, actor Actor, req *dto.SummarizeRequest) (string, error)
}

type summarizeService struct {
	notes   NoteStore
	storage filestorage.Storage
	client  *summarizer.Client
}

// NewSummarizeService creates a new instance of SummarizeService.
func NewSummarizeService(notes NoteStore, storage filestorage.Storage, client *summarizer.Client) SummarizeService {
	return &summarizeService{
		notes:   notes,
		storage: storage,
		client:  client,
	}
}

// Summarize runs the summarization pipeline. Raw text takes precedence over
// a note reference; the configuration check runs before any file is opened
// so a missing API key never wastes an extraction.
func (s *summarizeService) Summarize(ctx context.Context, actor Actor, req *dto.SummarizeRequest) (string, error) {
	if !s.client.Configured() {
		return "", apperrors.ErrSummarizerNotConfigured
	}

	if text := strings.TrimSpace(req.Notes); text != "" {
		return s.client.Summarize(ctx, text)
	}

	if req.NoteID <= 0 {
		return "", apperrors.NewValidationError("either notes text or noteId is required")
	}

	note, err := s.notes.GetByID(ctx, req.NoteID)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(path.Ext(note.FileURL)) {
	case ".pdf":
		return s.summarizePDF(ctx, note.FileURL)
	case ".png", ".jpg", ".jpeg":
		return imageSummaryUnavailable, nil
	default:
		return "", apperrors.ErrUnsupportedFileType
	}
}

func (s *summarizeService) summarizePDF(ctx context.Context, reference string) (string, error) {
	file, err := s.storage.Open(ctx, reference)
	if err != nil {
		return "", err
	}
	defer file.Close()

	text, err := pdftext.Extract(file)
	if err != nil {
		logger.Warn().Err(err).Str("reference", reference).Msg("PDF text extraction failed")
		return "", apperrors.ErrUnextractableContent
	}

	if strings.TrimSpace(text) == "" {
		return "", apperrors.ErrUnextractableContent
	}

	return s.client.Summarize(ctx, text)
}

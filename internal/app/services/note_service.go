package services

import (
	"context"
	"mime/multipart"

	appauth "github.com/mertc/notebook/internal/app/auth"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/app/repositories"
	"github.com/mertc/notebook/internal/pkg/filestorage"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// NoteStore is the persistence surface NoteService needs.
type NoteStore interface {
	List(ctx context.Context, filter repositories.NoteFilter) ([]*models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	FindByFileSuffix(ctx context.Context, filename string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// NoteService defines operations over the published notes library.
type NoteService interface {
	List(ctx context.Context, actor Actor, filter *dto.NoteFilterRequest) ([]*models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Upload(ctx context.Context, actor Actor, meta *dto.UploadNoteRequest, fileHeader *multipart.FileHeader) (*models.Note, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	ResolveDownload(ctx context.Context, filename string) (*models.Note, error)
}

type noteService struct {
	notes   NoteStore
	storage filestorage.Storage
}

// NewNoteService creates a new instance of NoteService.
func NewNoteService(notes NoteStore, storage filestorage.Storage) NoteService {
	return &noteService{
		notes:   notes,
		storage: storage,
	}
}

// List returns notes matching the filter, newest first. When no college
// filter is given, the listing is scoped to the caller's own college.
func (s *noteService) List(ctx context.Context, actor Actor, filter *dto.NoteFilterRequest) ([]*models.Note, error) {
	collegeID := filter.CollegeID
	if collegeID == 0 {
		collegeID = actor.CollegeID
	}

	return s.notes.List(ctx, repositories.NoteFilter{
		CollegeID:  collegeID,
		Department: filter.Department,
		Semester:   filter.Semester,
		Subject:    filter.Subject,
		Type:       filter.Type,
		Year:       filter.Year,
		ExamType:   filter.ExamType,
		Search:     filter.Search,
	})
}

// Get returns a single note by id.
func (s *noteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	return s.notes.GetByID(ctx, id)
}

// Upload stores the file and publishes the note directly, bypassing
// moderation. The file is written before the metadata is checked, so a
// failed validation or insert must remove the stored file again.
func (s *noteService) Upload(ctx context.Context, actor Actor, meta *dto.UploadNoteRequest, fileHeader *multipart.FileHeader) (*models.Note, error) {
	if err := appauth.Require(actor.Role, appauth.ActionNoteUpload); err != nil {
		return nil, err
	}

	reference, err := s.storage.Save(ctx, fileHeader)
	if err != nil {
		return nil, err
	}

	noteType, examType, err := validateNoteMetadata(noteMetadata{
		Title:       meta.Title,
		Description: meta.Description,
		Subject:     meta.Subject,
		Department:  meta.Department,
		Semester:    meta.Semester,
		Type:        meta.Type,
		Year:        meta.Year,
		ExamType:    meta.ExamType,
	})
	if err != nil {
		s.discardFile(ctx, reference)
		return nil, err
	}

	note := &models.Note{
		Title:       meta.Title,
		Description: meta.Description,
		Subject:     meta.Subject,
		Department:  meta.Department,
		Semester:    meta.Semester,
		Type:        noteType,
		Year:        optionalYear(meta.Year),
		ExamType:    examType,
		FileURL:     reference,
		UploadedBy:  actor.UserID,
		CollegeID:   actor.CollegeID,
	}

	id, err := s.notes.Create(ctx, note)
	if err != nil {
		s.discardFile(ctx, reference)
		return nil, err
	}
	note.ID = id

	logger.Info().Int64("noteID", id).Int64("userID", actor.UserID).Msg("Note uploaded")

	return note, nil
}

// Delete removes a note and then its stored file. A missing note is reported
// before any permission failure; the file removal is best-effort and never
// fails the operation once the record is gone.
func (s *noteService) Delete(ctx context.Context, actor Actor, id int64) error {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := appauth.Require(actor.Role, appauth.ActionNoteDelete); err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, note.FileURL); err != nil {
		logger.Warn().Err(err).Int64("noteID", id).Str("reference", note.FileURL).Msg("Failed to delete note file; record already removed")
	}

	logger.Info().Int64("noteID", id).Int64("userID", actor.UserID).Msg("Note deleted")

	return nil
}

// ResolveDownload maps a bare filename from a download link back to its note.
func (s *noteService) ResolveDownload(ctx context.Context, filename string) (*models.Note, error) {
	return s.notes.FindByFileSuffix(ctx, filename)
}

func (s *noteService) discardFile(ctx context.Context, reference string) {
	if err := s.storage.Delete(ctx, reference); err != nil {
		logger.Warn().Err(err).Str("reference", reference).Msg("Failed to clean up stored file after failed publish")
	}
}

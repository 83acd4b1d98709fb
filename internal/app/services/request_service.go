package services

import (
	"context"
	"mime/multipart"
	"strings"

	appauth "github.com/mertc/notebook/internal/app/auth"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/filestorage"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// RequestStore is the persistence surface RequestService needs. Approve and
// Reject are atomic: they succeed only on a still-pending request.
type RequestStore interface {
	Create(ctx context.Context, req *models.NoteRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.NoteRequest, error)
	ListByStatus(ctx context.Context, collegeID int64, statuses ...models.RequestStatus) ([]*models.NoteRequest, error)
	ListByRequester(ctx context.Context, userID int64) ([]*models.NoteRequest, error)
	Approve(ctx context.Context, id int64, reviewerID int64) (*models.NoteRequest, error)
	Reject(ctx context.Context, id int64, reviewerID int64, message string) (*models.NoteRequest, error)
}

// RequestService defines the moderation workflow: submission, the review
// queues and the approve/reject decisions.
type RequestService interface {
	Submit(ctx context.Context, actor Actor, meta *dto.SubmitRequestRequest, fileHeader *multipart.FileHeader) (*models.NoteRequest, error)
	ListMine(ctx context.Context, actor Actor) ([]*models.NoteRequest, error)
	ListPending(ctx context.Context, actor Actor) ([]*models.NoteRequest, error)
	ListReviewed(ctx context.Context, actor Actor) ([]*models.NoteRequest, error)
	Approve(ctx context.Context, actor Actor, id int64) (*models.NoteRequest, error)
	Reject(ctx context.Context, actor Actor, id int64, message string) (*models.NoteRequest, error)
}

type requestService struct {
	requests RequestStore
	storage  filestorage.Storage
}

// NewRequestService creates a new instance of RequestService.
func NewRequestService(requests RequestStore, storage filestorage.Storage) RequestService {
	return &requestService{
		requests: requests,
		storage:  storage,
	}
}

// Submit stores the file and creates a pending request for review. Like a
// direct upload, the file is written first and removed again when the
// metadata fails validation.
func (s *requestService) Submit(ctx context.Context, actor Actor, meta *dto.SubmitRequestRequest, fileHeader *multipart.FileHeader) (*models.NoteRequest, error) {
	if err := appauth.Require(actor.Role, appauth.ActionRequestSubmit); err != nil {
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

	request := &models.NoteRequest{
		Title:       meta.Title,
		Description: meta.Description,
		Subject:     meta.Subject,
		Department:  meta.Department,
		Semester:    meta.Semester,
		Type:        noteType,
		Year:        optionalYear(meta.Year),
		ExamType:    examType,
		FileURL:     reference,
		Status:      models.RequestStatusPending,
		RequestedBy: actor.UserID,
		CollegeID:   actor.CollegeID,
	}

	id, err := s.requests.Create(ctx, request)
	if err != nil {
		s.discardFile(ctx, reference)
		return nil, err
	}
	request.ID = id

	logger.Info().Int64("requestID", id).Int64("userID", actor.UserID).Msg("Note request submitted")

	return request, nil
}

// ListMine returns the caller's own submissions regardless of status.
func (s *requestService) ListMine(ctx context.Context, actor Actor) ([]*models.NoteRequest, error) {
	return s.requests.ListByRequester(ctx, actor.UserID)
}

// ListPending returns the review queue for the reviewer's college.
func (s *requestService) ListPending(ctx context.Context, actor Actor) ([]*models.NoteRequest, error) {
	if err := appauth.Require(actor.Role, appauth.ActionRequestReview); err != nil {
		return nil, err
	}
	return s.requests.ListByStatus(ctx, actor.CollegeID, models.RequestStatusPending)
}

// ListReviewed returns already-decided requests for the reviewer's college.
func (s *requestService) ListReviewed(ctx context.Context, actor Actor) ([]*models.NoteRequest, error) {
	if err := appauth.Require(actor.Role, appauth.ActionRequestReview); err != nil {
		return nil, err
	}
	return s.requests.ListByStatus(ctx, actor.CollegeID, models.RequestStatusApproved, models.RequestStatusRejected)
}

// Approve publishes a pending request as a note. The underlying transition
// is conditional on the pending status, so a request can be decided at most
// once even under concurrent reviews.
func (s *requestService) Approve(ctx context.Context, actor Actor, id int64) (*models.NoteRequest, error) {
	if err := appauth.Require(actor.Role, appauth.ActionRequestReview); err != nil {
		return nil, err
	}

	approved, err := s.requests.Approve(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("requestID", id).Int64("reviewerID", actor.UserID).Msg("Note request approved")

	return approved, nil
}

// Reject declines a pending request with mandatory feedback for the
// requester. The stored file is kept so a resubmission can reference it.
func (s *requestService) Reject(ctx context.Context, actor Actor, id int64, message string) (*models.NoteRequest, error) {
	if err := appauth.Require(actor.Role, appauth.ActionRequestReview); err != nil {
		return nil, err
	}

	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("teacherMessage is required when rejecting a request")
	}

	rejected, err := s.requests.Reject(ctx, id, actor.UserID, message)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("requestID", id).Int64("reviewerID", actor.UserID).Msg("Note request rejected")

	return rejected, nil
}

func (s *requestService) discardFile(ctx context.Context, reference string) {
	if err := s.storage.Delete(ctx, reference); err != nil {
		logger.Warn().Err(err).Str("reference", reference).Msg("Failed to clean up stored file after failed submission")
	}
}

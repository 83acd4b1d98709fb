package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
)

var (
	studentActor = Actor{UserID: 10, Role: models.RoleStudent, CollegeID: 1}
	teacherActor = Actor{UserID: 20, Role: models.RoleTeacher, CollegeID: 1}
	adminActor   = Actor{UserID: 30, Role: models.RoleAdmin, CollegeID: 1}
)

func validSubmission() *dto.SubmitRequestRequest {
	return &dto.SubmitRequestRequest{
		Title:      "Operating Systems Unit 3",
		Subject:    "Operating Systems",
		Department: "CSE",
		Semester:   5,
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	store := newFakeRequestStore()
	storage := newFakeStorage()
	svc := NewRequestService(store, storage)

	fileHeader := newUploadFileHeader(t, "os-unit3.pdf", "application/pdf", []byte("pdf bytes"))

	request, err := svc.Submit(context.Background(), studentActor, validSubmission(), fileHeader)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusPending, request.Status)
	require.Equal(t, studentActor.UserID, request.RequestedBy)
	require.Equal(t, studentActor.CollegeID, request.CollegeID)
	require.Equal(t, models.NoteTypeNote, request.Type, "type should default to note")
	require.Contains(t, storage.files, request.FileURL)
}

func TestSubmitValidationFailureCleansUpStoredFile(t *testing.T) {
	store := newFakeRequestStore()
	storage := newFakeStorage()
	svc := NewRequestService(store, storage)

	meta := validSubmission()
	meta.Title = ""

	fileHeader := newUploadFileHeader(t, "untitled.pdf", "application/pdf", []byte("pdf bytes"))

	_, err := svc.Submit(context.Background(), studentActor, meta, fileHeader)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	require.Equal(t, 1, storage.saves, "file should be stored before metadata validation")
	require.Len(t, storage.deleted, 1, "stored file should be removed after validation failure")
	require.Empty(t, store.requests)
}

func TestSubmitInvalidSemesterRejected(t *testing.T) {
	store := newFakeRequestStore()
	storage := newFakeStorage()
	svc := NewRequestService(store, storage)

	meta := validSubmission()
	meta.Semester = 9

	fileHeader := newUploadFileHeader(t, "notes.pdf", "application/pdf", []byte("pdf bytes"))

	_, err := svc.Submit(context.Background(), studentActor, meta, fileHeader)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSubmitStoreFailureCleansUpStoredFile(t *testing.T) {
	store := newFakeRequestStore()
	store.createErr = context.DeadlineExceeded
	storage := newFakeStorage()
	svc := NewRequestService(store, storage)

	fileHeader := newUploadFileHeader(t, "notes.pdf", "application/pdf", []byte("pdf bytes"))

	_, err := svc.Submit(context.Background(), studentActor, validSubmission(), fileHeader)
	require.Error(t, err)
	require.Len(t, storage.deleted, 1)
}

func TestListPendingRequiresReviewer(t *testing.T) {
	svc := NewRequestService(newFakeRequestStore(), newFakeStorage())

	_, err := svc.ListPending(context.Background(), studentActor)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.ListPending(context.Background(), teacherActor)
	require.NoError(t, err)
}

func TestListReviewedRequiresReviewer(t *testing.T) {
	svc := NewRequestService(newFakeRequestStore(), newFakeStorage())

	_, err := svc.ListReviewed(context.Background(), studentActor)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func submitTestRequest(t *testing.T, svc RequestService) *models.NoteRequest {
	t.Helper()
	fileHeader := newUploadFileHeader(t, "notes.pdf", "application/pdf", []byte("pdf bytes"))
	request, err := svc.Submit(context.Background(), studentActor, validSubmission(), fileHeader)
	require.NoError(t, err)
	return request
}

func TestApprovePublishesNote(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store, newFakeStorage())
	request := submitTestRequest(t, svc)

	approved, err := svc.Approve(context.Background(), teacherActor, request.ID)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusApproved, approved.Status)
	require.NotNil(t, approved.NoteID)
	require.NotNil(t, approved.ReviewedBy)
	require.Equal(t, teacherActor.UserID, *approved.ReviewedBy)

	require.Len(t, store.published, 1)
	note := store.published[0]
	require.Equal(t, request.Title, note.Title)
	require.Equal(t, request.FileURL, note.FileURL)
	require.Equal(t, studentActor.UserID, note.UploadedBy, "note should credit the original requester")
}

func TestApproveDecidedRequestConflicts(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store, newFakeStorage())
	request := submitTestRequest(t, svc)

	_, err := svc.Approve(context.Background(), teacherActor, request.ID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), adminActor, request.ID)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
	require.Len(t, store.published, 1, "a request must publish at most one note")

	_, err = svc.Reject(context.Background(), teacherActor, request.ID, "changed my mind")
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestApproveMissingRequest(t *testing.T) {
	svc := NewRequestService(newFakeRequestStore(), newFakeStorage())

	_, err := svc.Approve(context.Background(), teacherActor, 404)
	require.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestStudentCannotApprove(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store, newFakeStorage())
	request := submitTestRequest(t, svc)

	_, err := svc.Approve(context.Background(), studentActor, request.ID)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	require.Equal(t, models.RequestStatusPending, store.requests[request.ID].Status)
}

func TestRejectRequiresMessage(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store, newFakeStorage())
	request := submitTestRequest(t, svc)

	_, err := svc.Reject(context.Background(), teacherActor, request.ID, "   ")
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	require.Equal(t, models.RequestStatusPending, store.requests[request.ID].Status)
}

func TestRejectStoresFeedback(t *testing.T) {
	store := newFakeRequestStore()
	storage := newFakeStorage()
	svc := NewRequestService(store, storage)
	request := submitTestRequest(t, svc)

	rejected, err := svc.Reject(context.Background(), teacherActor, request.ID, "Scan quality is too low, please re-upload")
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusRejected, rejected.Status)
	require.NotNil(t, rejected.TeacherMessage)
	require.Equal(t, "Scan quality is too low, please re-upload", *rejected.TeacherMessage)
	require.Nil(t, rejected.NoteID)
	require.Contains(t, storage.files, request.FileURL, "rejected request keeps its stored file")
}

func TestListMineReturnsOwnRequests(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store, newFakeStorage())
	request := submitTestRequest(t, svc)

	mine, err := svc.ListMine(context.Background(), studentActor)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, request.ID, mine[0].ID)

	other, err := svc.ListMine(context.Background(), Actor{UserID: 99, Role: models.RoleStudent, CollegeID: 1})
	require.NoError(t, err)
	require.Empty(t, other)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
)

func validUpload() *dto.UploadNoteRequest {
	return &dto.UploadNoteRequest{
		Title:      "DBMS normalization notes",
		Subject:    "Database Systems",
		Department: "CSE",
		Semester:   4,
	}
}

func TestListDefaultsToActorCollege(t *testing.T) {
	store := newFakeNoteStore()
	svc := NewNoteService(store, newFakeStorage())

	_, err := svc.List(context.Background(), teacherActor, &dto.NoteFilterRequest{})
	require.NoError(t, err)
	require.Equal(t, teacherActor.CollegeID, store.lastFilter.CollegeID)
}

func TestListExplicitCollegeOverridesDefault(t *testing.T) {
	store := newFakeNoteStore()
	svc := NewNoteService(store, newFakeStorage())

	_, err := svc.List(context.Background(), teacherActor, &dto.NoteFilterRequest{CollegeID: 7, Search: "deadlock"})
	require.NoError(t, err)
	require.Equal(t, int64(7), store.lastFilter.CollegeID)
	require.Equal(t, "deadlock", store.lastFilter.Search)
}

func TestUploadRequiresUploaderRole(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	svc := NewNoteService(store, storage)

	fileHeader := newUploadFileHeader(t, "notes.pdf", "application/pdf", []byte("pdf bytes"))

	_, err := svc.Upload(context.Background(), studentActor, validUpload(), fileHeader)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	require.Zero(t, storage.saves, "no file may be written for a forbidden upload")
}

func TestUploadPublishesNote(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	svc := NewNoteService(store, storage)

	fileHeader := newUploadFileHeader(t, "dbms.pdf", "application/pdf", []byte("pdf bytes"))

	note, err := svc.Upload(context.Background(), teacherActor, validUpload(), fileHeader)
	require.NoError(t, err)
	require.NotZero(t, note.ID)
	require.Equal(t, teacherActor.UserID, note.UploadedBy)
	require.Equal(t, teacherActor.CollegeID, note.CollegeID)
	require.Contains(t, storage.files, note.FileURL)
}

func TestUploadValidationFailureCleansUpStoredFile(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	svc := NewNoteService(store, storage)

	meta := validUpload()
	meta.Subject = ""

	fileHeader := newUploadFileHeader(t, "dbms.pdf", "application/pdf", []byte("pdf bytes"))

	_, err := svc.Upload(context.Background(), adminActor, meta, fileHeader)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	require.Len(t, storage.deleted, 1)
	require.Empty(t, store.notes)
}

func TestUploadInsertFailureCleansUpStoredFile(t *testing.T) {
	store := newFakeNoteStore()
	store.createErr = context.DeadlineExceeded
	storage := newFakeStorage()
	svc := NewNoteService(store, storage)

	fileHeader := newUploadFileHeader(t, "dbms.pdf", "application/pdf", []byte("pdf bytes"))

	_, err := svc.Upload(context.Background(), teacherActor, validUpload(), fileHeader)
	require.Error(t, err)
	require.Len(t, storage.deleted, 1)
}

func TestDeleteMissingNoteReportsNotFoundFirst(t *testing.T) {
	svc := NewNoteService(newFakeNoteStore(), newFakeStorage())

	// A student would be forbidden, but a missing note wins
	err := svc.Delete(context.Background(), studentActor, 404)
	require.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func seedNote(t *testing.T, store *fakeNoteStore, storage *fakeStorage) *models.Note {
	t.Helper()
	note := &models.Note{
		Title:      "DBMS normalization notes",
		Subject:    "Database Systems",
		Department: "CSE",
		Semester:   4,
		Type:       models.NoteTypeNote,
		ExamType:   models.ExamTypeOther,
		FileURL:    "http://files.local/uploads/dbms.pdf",
		UploadedBy: teacherActor.UserID,
		CollegeID:  teacherActor.CollegeID,
	}
	id, err := store.Create(context.Background(), note)
	require.NoError(t, err)
	note.ID = id
	storage.seedFile(note.FileURL, []byte("pdf bytes"))
	return note
}

func TestDeleteForbiddenForNonTeachers(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	svc := NewNoteService(store, storage)
	note := seedNote(t, store, storage)

	require.ErrorIs(t, svc.Delete(context.Background(), studentActor, note.ID), apperrors.ErrPermissionDenied)
	require.ErrorIs(t, svc.Delete(context.Background(), adminActor, note.ID), apperrors.ErrPermissionDenied)
	require.Contains(t, store.notes, note.ID, "note must survive a forbidden delete")
}

func TestDeleteRemovesRecordAndFile(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	svc := NewNoteService(store, storage)
	note := seedNote(t, store, storage)

	require.NoError(t, svc.Delete(context.Background(), teacherActor, note.ID))
	require.NotContains(t, store.notes, note.ID)
	require.Contains(t, storage.deleted, note.FileURL)
}

func TestResolveDownload(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	svc := NewNoteService(store, storage)
	note := seedNote(t, store, storage)

	found, err := svc.ResolveDownload(context.Background(), "dbms.pdf")
	require.NoError(t, err)
	require.Equal(t, note.ID, found.ID)

	_, err = svc.ResolveDownload(context.Background(), "other.pdf")
	require.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

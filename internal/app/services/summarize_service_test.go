package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/summarizer"
)

type upstreamFake struct {
	server   *httptest.Server
	hits     int
	lastUser string
}

// newUpstream starts a chat-completions stub that echoes a fixed summary and
// records the user message it was sent.
func newUpstream(t *testing.T) *upstreamFake {
	t.Helper()
	fake := &upstreamFake{}
	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.hits++

		var payload struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		for _, m := range payload.Messages {
			if m.Role == "user" {
				fake.lastUser = m.Content
			}
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Summary of the material."}},
			},
		})
	}))
	t.Cleanup(fake.server.Close)
	return fake
}

func newTestSummarizeService(t *testing.T, notes *fakeNoteStore, storage *fakeStorage) (SummarizeService, *upstreamFake) {
	t.Helper()
	upstream := newUpstream(t)
	client := summarizer.NewClient(summarizer.Config{
		APIKey:  "test-key",
		BaseURL: upstream.server.URL,
		Model:   "test-model",
	})
	return NewSummarizeService(notes, storage, client), upstream
}

func pdfWithText(t *testing.T, text string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(40, 10, text)

	buf := &bytes.Buffer{}
	require.NoError(t, doc.Output(buf))
	return buf.Bytes()
}

func seedStoredNote(store *fakeNoteStore, fileURL string) int64 {
	id, _ := store.Create(context.Background(), &models.Note{
		Title:      "stored note",
		Subject:    "Subject",
		Department: "CSE",
		Semester:   4,
		Type:       models.NoteTypeNote,
		ExamType:   models.ExamTypeOther,
		FileURL:    fileURL,
		UploadedBy: teacherActor.UserID,
		CollegeID:  teacherActor.CollegeID,
	})
	return id
}

func TestSummarizeUnconfiguredService(t *testing.T) {
	client := summarizer.NewClient(summarizer.Config{BaseURL: "http://localhost", Model: "test"})
	svc := NewSummarizeService(newFakeNoteStore(), newFakeStorage(), client)

	_, err := svc.Summarize(context.Background(), studentActor, &dto.SummarizeRequest{Notes: "some text"})
	require.ErrorIs(t, err, apperrors.ErrSummarizerNotConfigured)
}

func TestSummarizeRawTextTakesPrecedence(t *testing.T) {
	store := newFakeNoteStore()
	svc, upstream := newTestSummarizeService(t, store, newFakeStorage())

	summary, err := svc.Summarize(context.Background(), studentActor, &dto.SummarizeRequest{
		Notes:  "Raw lecture text",
		NoteID: 123,
	})
	require.NoError(t, err)
	require.Equal(t, "Summary of the material.", summary)
	require.Equal(t, 1, upstream.hits)
	require.Contains(t, upstream.lastUser, "Raw lecture text")
	require.Zero(t, store.getCalls, "note lookup must be skipped when raw text is given")
}

func TestSummarizeRequiresInput(t *testing.T) {
	svc, upstream := newTestSummarizeService(t, newFakeNoteStore(), newFakeStorage())

	_, err := svc.Summarize(context.Background(), studentActor, &dto.SummarizeRequest{})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	require.Zero(t, upstream.hits)
}

func TestSummarizeMissingNote(t *testing.T) {
	svc, _ := newTestSummarizeService(t, newFakeNoteStore(), newFakeStorage())

	_, err := svc.Summarize(context.Background(), studentActor, &dto.SummarizeRequest{NoteID: 404})
	require.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestSummarizePDFNote(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	fileURL := "http://files.local/uploads/os-notes.pdf"
	storage.seedFile(fileURL, pdfWithText(t, "Deadlock avoidance strategies"))
	noteID := seedStoredNote(store, fileURL)

	svc, upstream := newTestSummarizeService(t, store, storage)

	summary, err := svc.Summarize(context.Background(), studentActor, &dto.SummarizeRequest{NoteID: noteID})
	require.NoError(t, err)
	require.Equal(t, "Summary of the material.", summary)
	require.Contains(t, upstream.lastUser, "Deadlock avoidance strategies")
}

func TestSummarizeEmptyPDFUnextractable(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	fileURL := "http://files.local/uploads/scanned.pdf"

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	buf := &bytes.Buffer{}
	require.NoError(t, doc.Output(buf))
	storage.seedFile(fileURL, buf.Bytes())

	noteID := seedStoredNote(store, fileURL)
	svc, upstream := newTestSummarizeService(t, store, storage)

	_, err := svc.Summarize(context.Background(), studentActor, &dto.SummarizeRequest{NoteID: noteID})
	require.ErrorIs(t, err, apperrors.ErrUnextractableContent)
	require.Zero(t, upstream.hits)
}

func TestSummarizeImageNoteFixedMessage(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	fileURL := "http://files.local/uploads/board-photo.jpg"
	storage.seedFile(fileURL, []byte{0xff, 0xd8, 0xff})
	noteID := seedStoredNote(store, fileURL)

	svc, upstream := newTestSummarizeService(t, store, storage)

	summary, err := svc.Summarize(context.Background(), studentActor, &dto.SummarizeRequest{NoteID: noteID})
	require.NoError(t, err)
	require.Equal(t, "Image summarization is currently unavailable as the vision models have been decommissioned.", summary)
	require.Zero(t, upstream.hits, "image notes never reach the upstream model")
}

func TestSummarizeUnsupportedFileKind(t *testing.T) {
	store := newFakeNoteStore()
	storage := newFakeStorage()
	fileURL := "http://files.local/uploads/notes.docx"
	storage.seedFile(fileURL, []byte("docx"))
	noteID := seedStoredNote(store, fileURL)

	svc, upstream := newTestSummarizeService(t, store, storage)

	_, err := svc.Summarize(context.Background(), studentActor, &dto.SummarizeRequest{NoteID: noteID})
	require.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
	require.Zero(t, upstream.hits)
}

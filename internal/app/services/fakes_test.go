package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/repositories"
	"github.com/mertc/notebook/internal/pkg/apperrors"
)

func newUploadFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

// fakeStorage is an in-memory filestorage.Storage.
type fakeStorage struct {
	files   map[string][]byte
	saveErr error
	deleted []string
	saves   int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saves++
	reference := "http://files.local/uploads/" + fileHeader.Filename

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	f.files[reference] = data
	return reference, nil
}

func (f *fakeStorage) Open(ctx context.Context, reference string) (io.ReadCloser, error) {
	data, ok := f.files[reference]
	if !ok {
		return nil, apperrors.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) URL(reference string) string { return reference }

func (f *fakeStorage) Delete(ctx context.Context, reference string) error {
	delete(f.files, reference)
	f.deleted = append(f.deleted, reference)
	return nil
}

// seedFile registers a stored file without going through Save.
func (f *fakeStorage) seedFile(reference string, data []byte) {
	f.files[reference] = data
}

// fakeNoteStore is an in-memory NoteStore.
type fakeNoteStore struct {
	notes      map[int64]*models.Note
	nextID     int64
	createErr  error
	lastFilter repositories.NoteFilter
	getCalls   int
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[int64]*models.Note)}
}

func (f *fakeNoteStore) List(ctx context.Context, filter repositories.NoteFilter) ([]*models.Note, error) {
	f.lastFilter = filter
	out := make([]*models.Note, 0)
	for _, n := range f.notes {
		if filter.CollegeID > 0 && n.CollegeID != filter.CollegeID {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNoteStore) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	f.getCalls++
	note, ok := f.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	return note, nil
}

func (f *fakeNoteStore) FindByFileSuffix(ctx context.Context, filename string) (*models.Note, error) {
	for _, n := range f.notes {
		if len(n.FileURL) >= len(filename) && n.FileURL[len(n.FileURL)-len(filename):] == filename {
			return n, nil
		}
	}
	return nil, apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) Create(ctx context.Context, note *models.Note) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	stored := *note
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.notes[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeNoteStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.notes[id]; !ok {
		return apperrors.ErrNoteNotFound
	}
	delete(f.notes, id)
	return nil
}

// fakeRequestStore is an in-memory RequestStore honoring the same transition
// contract as the SQL implementation: a request is decided at most once.
type fakeRequestStore struct {
	requests  map[int64]*models.NoteRequest
	nextID    int64
	createErr error
	published []*models.Note
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[int64]*models.NoteRequest)}
}

func (f *fakeRequestStore) Create(ctx context.Context, req *models.NoteRequest) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	stored := *req
	stored.ID = f.nextID
	stored.Status = models.RequestStatusPending
	stored.CreatedAt = time.Now()
	f.requests[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRequestStore) GetByID(ctx context.Context, id int64) (*models.NoteRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestStore) ListByStatus(ctx context.Context, collegeID int64, statuses ...models.RequestStatus) ([]*models.NoteRequest, error) {
	out := make([]*models.NoteRequest, 0)
	for _, r := range f.requests {
		if r.CollegeID != collegeID {
			continue
		}
		for _, s := range statuses {
			if r.Status == s {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRequestStore) ListByRequester(ctx context.Context, userID int64) ([]*models.NoteRequest, error) {
	out := make([]*models.NoteRequest, 0)
	for _, r := range f.requests {
		if r.RequestedBy == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) claim(id int64, reviewerID int64, status models.RequestStatus, message *string) (*models.NoteRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	if req.Status != models.RequestStatusPending {
		return nil, apperrors.ErrInvalidState
	}

	now := time.Now()
	req.Status = status
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &now
	req.TeacherMessage = message
	return req, nil
}

func (f *fakeRequestStore) Approve(ctx context.Context, id int64, reviewerID int64) (*models.NoteRequest, error) {
	req, err := f.claim(id, reviewerID, models.RequestStatusApproved, nil)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Department:  req.Department,
		Semester:    req.Semester,
		Type:        req.Type,
		Year:        req.Year,
		ExamType:    req.ExamType,
		FileURL:     req.FileURL,
		UploadedBy:  req.RequestedBy,
		CollegeID:   req.CollegeID,
	}
	noteID := int64(len(f.published) + 1)
	note.ID = noteID
	f.published = append(f.published, note)
	req.NoteID = &noteID

	return req, nil
}

func (f *fakeRequestStore) Reject(ctx context.Context, id int64, reviewerID int64, message string) (*models.NoteRequest, error) {
	return f.claim(id, reviewerID, models.RequestStatusRejected, &message)
}

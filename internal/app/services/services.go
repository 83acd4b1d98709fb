package services

import (
	"strings"

	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/repositories"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/auth"
	"github.com/mertc/notebook/internal/pkg/filestorage"
	"github.com/mertc/notebook/internal/pkg/summarizer"
)

// Actor is the authenticated caller of a service operation, as established
// by the JWT middleware.
type Actor struct {
	UserID    int64
	Role      models.RoleType
	CollegeID int64
}

// Services holds all the service instances
type Services struct {
	AuthService      AuthService
	CollegeService   CollegeService
	NoteService      NoteService
	RequestService   RequestService
	SummarizeService SummarizeService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	storage filestorage.Storage,
	summaryClient *summarizer.Client,
	jwtService *auth.JWTService,
) *Services {
	return &Services{
		AuthService:      NewAuthService(repos.UserRepository, repos.CollegeRepository, jwtService),
		CollegeService:   NewCollegeService(repos.CollegeRepository),
		NoteService:      NewNoteService(repos.NoteRepository, storage),
		RequestService:   NewRequestService(repos.RequestRepository, storage),
		SummarizeService: NewSummarizeService(repos.NoteRepository, storage, summaryClient),
	}
}

// noteMetadata is the shared shape of upload and request submissions.
type noteMetadata struct {
	Title       string
	Description string
	Subject     string
	Department  string
	Semester    int
	Type        string
	Year        int
	ExamType    string
}

// validateNoteMetadata enforces the required fields and enum values for a
// submission. It runs after the file is stored so callers can clean the file
// up on failure.
func validateNoteMetadata(meta noteMetadata) (models.NoteType, models.ExamType, error) {
	if strings.TrimSpace(meta.Title) == "" {
		return "", "", apperrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(meta.Subject) == "" {
		return "", "", apperrors.NewValidationError("subject is required")
	}
	if strings.TrimSpace(meta.Department) == "" {
		return "", "", apperrors.NewValidationError("department is required")
	}
	if meta.Semester < 1 || meta.Semester > 8 {
		return "", "", apperrors.NewValidationError("semester must be between 1 and 8")
	}

	noteType := models.NoteType(meta.Type)
	if meta.Type == "" {
		noteType = models.NoteTypeNote
	}
	if !models.ValidNoteType(noteType) {
		return "", "", apperrors.NewValidationError("type must be note or pastpaper")
	}

	examType := models.ExamType(meta.ExamType)
	if meta.ExamType == "" {
		examType = models.ExamTypeOther
	}
	if !models.ValidExamType(examType) {
		return "", "", apperrors.NewValidationError("examType must be midsem, endsem, quiz or other")
	}

	return noteType, examType, nil
}

func optionalYear(year int) *int {
	if year <= 0 {
		return nil
	}
	return &year
}

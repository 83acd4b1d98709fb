package dto

import (
	"github.com/mertc/notebook/internal/app/models"
)

// NoteFilterRequest holds optional query filters for listing notes.
// All filters are conjunctive; Search is OR-ed across title, subject and
// description. CollegeID defaults to the caller's own college when zero.
type NoteFilterRequest struct {
	Search     string `form:"search"`
	CollegeID  int64  `form:"college"`
	Department string `form:"department"`
	Semester   int    `form:"semester" binding:"omitempty,min=1,max=8"`
	Subject    string `form:"subject"`
	Type       string `form:"type" binding:"omitempty,oneof=note pastpaper"`
	Year       int    `form:"year"`
	ExamType   string `form:"examType" binding:"omitempty,oneof=midsem endsem quiz other"`
}

// UploadNoteRequest carries the multipart metadata fields for a direct upload.
// The required-field checks (title, subject, department, semester) live in the
// service so that a stored file can be cleaned up when they fail.
type UploadNoteRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Subject     string `form:"subject"`
	Department  string `form:"department"`
	Semester    int    `form:"semester"`
	Type        string `form:"type"`
	Year        int    `form:"year"`
	ExamType    string `form:"examType"`
}

// UploadNoteResponse is returned on a successful upload.
type UploadNoteResponse struct {
	Message string       `json:"message"`
	Note    *models.Note `json:"note"`
	FileURL string       `json:"fileUrl"`
}

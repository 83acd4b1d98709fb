package models

import "time"

// Note defines a published study artifact based on the 'notes' table.
// Title, subject, department, semester and file URL are always present.
type Note struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Subject     string    `json:"subject" db:"subject"`
	Department  string    `json:"department" db:"department"`
	Semester    int       `json:"semester" db:"semester"` // 1-8
	Type        NoteType  `json:"type" db:"type"`
	Year        *int      `json:"year,omitempty" db:"year"`
	ExamType    ExamType  `json:"examType" db:"exam_type"`
	FileURL     string    `json:"fileUrl" db:"file_url"` // Opaque storage reference
	UploadedBy  int64     `json:"uploadedBy" db:"uploaded_by"`
	CollegeID   int64     `json:"collegeId" db:"college_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	UploaderName string   `json:"uploaderName,omitempty" db:"uploader_name"` // Joined from users
	UploaderRole RoleType `json:"uploaderRole,omitempty" db:"uploader_role"` // Joined from users
}

package models

import "time"

// NoteRequest defines a note submission awaiting moderation, based on the
// 'note_requests' table. Lifecycle: pending -> approved | rejected, exactly
// once. An approved request references the Note it produced; a rejected one
// carries mandatory reviewer feedback.
type NoteRequest struct {
	ID             int64         `json:"id" db:"id"`
	Title          string        `json:"title" db:"title"`
	Description    string        `json:"description" db:"description"`
	Subject        string        `json:"subject" db:"subject"`
	Department     string        `json:"department" db:"department"`
	Semester       int           `json:"semester" db:"semester"`
	Type           NoteType      `json:"type" db:"type"`
	Year           *int          `json:"year,omitempty" db:"year"`
	ExamType       ExamType      `json:"examType" db:"exam_type"`
	FileURL        string        `json:"fileUrl" db:"file_url"`
	Status         RequestStatus `json:"status" db:"status"`
	RequestedBy    int64         `json:"requestedBy" db:"requested_by"`
	CollegeID      int64         `json:"collegeId" db:"college_id"`
	TeacherMessage *string       `json:"teacherMessage,omitempty" db:"teacher_message"`
	ReviewedBy     *int64        `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt     *time.Time    `json:"reviewedAt,omitempty" db:"reviewed_at"`
	NoteID         *int64        `json:"noteId,omitempty" db:"note_id"` // Set when approved
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`

	RequesterName string `json:"requesterName,omitempty" db:"requester_name"` // Joined from users
}

package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
	RoleAdmin   RoleType = "admin"
)

// NoteType distinguishes lecture notes from past papers
type NoteType string

const (
	NoteTypeNote      NoteType = "note"
	NoteTypePastPaper NoteType = "pastpaper"
)

// ExamType classifies a past paper
type ExamType string

const (
	ExamTypeMidsem ExamType = "midsem"
	ExamTypeEndsem ExamType = "endsem"
	ExamTypeQuiz   ExamType = "quiz"
	ExamTypeOther  ExamType = "other"
)

// RequestStatus is the moderation state of a note request.
// pending is the only non-terminal state.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// ValidNoteType reports whether t is a known note type.
func ValidNoteType(t NoteType) bool {
	return t == NoteTypeNote || t == NoteTypePastPaper
}

// ValidExamType reports whether t is a known exam type.
func ValidExamType(t ExamType) bool {
	switch t {
	case ExamTypeMidsem, ExamTypeEndsem, ExamTypeQuiz, ExamTypeOther:
		return true
	}
	return false
}

package dto

// SubmitRequestRequest carries the multipart metadata fields for a note
// request submission. Field requirements mirror UploadNoteRequest.
type SubmitRequestRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Subject     string `form:"subject"`
	Department  string `form:"department"`
	Semester    int    `form:"semester"`
	Type        string `form:"type"`
	Year        int    `form:"year"`
	ExamType    string `form:"examType"`
}

// RejectRequestRequest carries the mandatory reviewer feedback for a rejection.
type RejectRequestRequest struct {
	TeacherMessage string `json:"teacherMessage"`
}

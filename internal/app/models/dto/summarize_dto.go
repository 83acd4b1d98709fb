package dto

// SummarizeRequest asks for a summary of raw text or of a stored note's file.
// Notes takes precedence; when set, extraction is skipped entirely.
type SummarizeRequest struct {
	Notes  string `json:"notes"`
	NoteID int64  `json:"noteId"`
}

// SummarizeResponse carries the generated summary text.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

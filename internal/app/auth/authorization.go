package auth

import (
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/pkg/apperrors"
)

// Action names a mutating operation subject to an authorization check.
type Action string

const (
	ActionNoteUpload    Action = "note.upload"
	ActionNoteDelete    Action = "note.delete"
	ActionRequestSubmit Action = "request.submit"
	ActionRequestReview Action = "request.review"
	ActionCollegeCreate Action = "college.create"
	ActionSummarize     Action = "summarize"
)

// policy is the single place role capabilities are declared. Every mutating
// operation consults this table instead of doing ad-hoc role comparisons in
// handlers.
var policy = map[Action][]models.RoleType{
	ActionNoteUpload:    {models.RoleTeacher, models.RoleAdmin},
	ActionNoteDelete:    {models.RoleTeacher},
	ActionRequestSubmit: {models.RoleStudent, models.RoleTeacher, models.RoleAdmin},
	ActionRequestReview: {models.RoleTeacher, models.RoleAdmin},
	ActionCollegeCreate: {models.RoleStudent, models.RoleTeacher, models.RoleAdmin},
	ActionSummarize:     {models.RoleStudent, models.RoleTeacher, models.RoleAdmin},
}

// Can reports whether the role is allowed to perform the action.
func Can(role models.RoleType, action Action) bool {
	allowed, ok := policy[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Require returns a permission-denied error when the role may not perform
// the action.
func Require(role models.RoleType, action Action) error {
	if !Can(role, action) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

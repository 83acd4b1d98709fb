package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// errorMapping binds a sentinel error to its HTTP representation.
type errorMapping struct {
	sentinel error
	status   int
	code     dto.ErrorCode
	message  string
}

// errorMappings is checked in order; the first errors.Is match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrAccessDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Access denied"},
	{apperrors.ErrNoteNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Note not found"},
	{apperrors.ErrRequestNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Note request not found"},
	{apperrors.ErrCollegeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "College not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrFileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "File not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrInvalidState, http.StatusConflict, dto.ErrorCodeInvalidState, "Request has already been reviewed"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrCollegeAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "College with this name or code already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflict"},
	{apperrors.ErrFileTooLarge, http.StatusBadRequest, dto.ErrorCodeFileTooLarge, "File exceeds the maximum allowed size of 10 MB"},
	{apperrors.ErrUnsupportedFileType, http.StatusBadRequest, dto.ErrorCodeUnsupportedFile, "Only PDF, PNG and JPEG files are accepted"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Bad request"},
	{apperrors.ErrUnextractableContent, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Could not extract text from this PDF"},
	{apperrors.ErrSummarizerNotConfigured, http.StatusInternalServerError, dto.ErrorCodeConfigurationError, "Summarization service is not configured"},
	{apperrors.ErrUpstreamFailure, http.StatusInternalServerError, dto.ErrorCodeExternalServiceError, "Summarization service failed"},
}

// HandleAPIError translates a service error into the standard error envelope.
// A wrapped CustomError contributes its message; unknown errors become an
// opaque 500 and are logged with their cause.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	hasCustom := errors.As(err, &custom)

	for _, m := range errorMappings {
		if !errors.Is(err, m.sentinel) {
			continue
		}

		message := m.message
		detail := dto.NewErrorDetail(m.code, message)
		if hasCustom && custom.Message != "" {
			detail.Message = custom.Message
			if custom.Details != nil {
				detail = detail.WithDetails(custom.Details)
			}
		}

		c.JSON(m.status, dto.APIResponse{Error: detail})
		return
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")

	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	if gin.Mode() != gin.ReleaseMode {
		detail = detail.WithDebugInfo("%v", err)
	}

	c.JSON(http.StatusInternalServerError, dto.APIResponse{Error: detail})
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
)

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorDetail {
	t.Helper()
	var resp struct {
		Error dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHandleAPIErrorMappings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"note not found", apperrors.ErrNoteNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"request not found", apperrors.ErrRequestNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"already reviewed", apperrors.ErrInvalidState, http.StatusConflict, dto.ErrorCodeInvalidState},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"file too large", apperrors.ErrFileTooLarge, http.StatusBadRequest, dto.ErrorCodeFileTooLarge},
		{"unsupported file", apperrors.ErrUnsupportedFileType, http.StatusBadRequest, dto.ErrorCodeUnsupportedFile},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"summarizer not configured", apperrors.ErrSummarizerNotConfigured, http.StatusInternalServerError, dto.ErrorCodeConfigurationError},
		{"unextractable pdf", apperrors.ErrUnextractableContent, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"upstream failure", apperrors.ErrUpstreamFailure, http.StatusInternalServerError, dto.ErrorCodeExternalServiceError},
		{"unknown error", context.DeadlineExceeded, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			require.Equal(t, tt.status, w.Code)
			require.Equal(t, tt.code, decodeErrorResponse(t, w).Code)
		})
	}
}

func TestHandleAPIErrorCustomMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, apperrors.NewValidationError("semester must be between 1 and 8"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeErrorResponse(t, w)
	require.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
	require.Equal(t, "semester must be between 1 and 8", detail.Message)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/app/services"
	"github.com/mertc/notebook/internal/middleware"
	"github.com/mertc/notebook/internal/pkg/apperrors"
)

// RequestController handles the note request moderation workflow
type RequestController struct {
	requestService services.RequestService
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService services.RequestService) *RequestController {
	return &RequestController{requestService: requestService}
}

// SubmitRequest godoc
// @Summary Submit a note for review
// @Tags requests
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Note file (PDF, PNG or JPEG, max 10 MB)"
// @Param title formData string true "Title"
// @Param subject formData string true "Subject"
// @Param department formData string true "Department"
// @Param semester formData int true "Semester (1-8)"
// @Success 201 {object} dto.APIResponse{data=models.NoteRequest}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /requests [post]
func (c *RequestController) SubmitRequest(ctx *gin.Context) {
	var meta dto.SubmitRequestRequest
	if err := ctx.ShouldBind(&meta); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid submission form"),
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file is required"))
		return
	}

	request, err := c.requestService.Submit(ctx, currentActor(ctx), &meta, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: request})
}

// GetMyRequests godoc
// @Summary List the caller's own submissions
// @Tags requests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]models.NoteRequest}
// @Router /requests/my [get]
func (c *RequestController) GetMyRequests(ctx *gin.Context) {
	requests, err := c.requestService.ListMine(ctx, currentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: requests})
}

// GetPendingRequests godoc
// @Summary List pending requests for review
// @Tags requests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]models.NoteRequest}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /requests/pending [get]
func (c *RequestController) GetPendingRequests(ctx *gin.Context) {
	requests, err := c.requestService.ListPending(ctx, currentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: requests})
}

// GetReviewedRequests godoc
// @Summary List already-decided requests
// @Tags requests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]models.NoteRequest}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /requests/reviewed [get]
func (c *RequestController) GetReviewedRequests(ctx *gin.Context) {
	requests, err := c.requestService.ListReviewed(ctx, currentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: requests})
}

// ApproveRequest godoc
// @Summary Approve a pending request
// @Description Publishes the request as a note; succeeds at most once per request
// @Tags requests
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.NoteRequest}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /requests/{id}/approve [put]
func (c *RequestController) ApproveRequest(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request ID"),
		})
		return
	}

	approved, err := c.requestService.Approve(ctx, currentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: approved})
}

// RejectRequest godoc
// @Summary Reject a pending request
// @Description Declines the request with mandatory feedback for the requester
// @Tags requests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Request ID"
// @Param request body dto.RejectRequestRequest true "Rejection feedback"
// @Success 200 {object} dto.APIResponse{data=models.NoteRequest}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /requests/{id}/reject [put]
func (c *RequestController) RejectRequest(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request ID"),
		})
		return
	}

	var req dto.RejectRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid rejection payload"),
		})
		return
	}

	rejected, err := c.requestService.Reject(ctx, currentActor(ctx), id, req.TeacherMessage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rejected})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/app/services"
	"github.com/mertc/notebook/internal/middleware"
)

// SummarizeController handles AI summarization requests
type SummarizeController struct {
	summarizeService services.SummarizeService
}

// NewSummarizeController creates a new SummarizeController
func NewSummarizeController(summarizeService services.SummarizeService) *SummarizeController {
	return &SummarizeController{summarizeService: summarizeService}
}

// Summarize godoc
// @Summary Summarize raw text or a stored note
// @Description Raw text takes precedence over a note reference
// @Tags summarize
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SummarizeRequest true "Text or note reference"
// @Success 200 {object} dto.APIResponse{data=dto.SummarizeResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 422 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 502 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 503 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /summarize [post]
func (c *SummarizeController) Summarize(ctx *gin.Context) {
	var req dto.SummarizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid summarize payload"),
		})
		return
	}

	summary, err := c.summarizeService.Summarize(ctx, currentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SummarizeResponse{Summary: summary}})
}

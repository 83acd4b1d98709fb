package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/app/services"
	"github.com/mertc/notebook/internal/middleware"
)

// CollegeController handles college operations
type CollegeController struct {
	collegeService services.CollegeService
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService services.CollegeService) *CollegeController {
	return &CollegeController{collegeService: collegeService}
}

// GetColleges godoc
// @Summary List all colleges
// @Tags colleges
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.College}
// @Router /colleges [get]
func (c *CollegeController) GetColleges(ctx *gin.Context) {
	colleges, err := c.collegeService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: colleges})
}

// CreateCollege godoc
// @Summary Register a new college
// @Tags colleges
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateCollegeRequest true "College payload"
// @Success 201 {object} dto.APIResponse{data=models.College}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /colleges [post]
func (c *CollegeController) CreateCollege(ctx *gin.Context) {
	var req dto.CreateCollegeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid college payload"),
		})
		return
	}

	college, err := c.collegeService.Create(ctx, currentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: college})
}

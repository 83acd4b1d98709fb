package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/app/services"
	"github.com/mertc/notebook/internal/middleware"
	"github.com/mertc/notebook/internal/pkg/apperrors"
)

// NoteController handles the published notes library
type NoteController struct {
	noteService services.NoteService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// GetNotes godoc
// @Summary List notes
// @Description List notes with optional filtering; defaults to the caller's college
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param search query string false "Case-insensitive search over title, subject and description"
// @Param college query int false "Filter by college ID"
// @Param department query string false "Filter by department"
// @Param semester query int false "Filter by semester (1-8)"
// @Param subject query string false "Filter by subject"
// @Param type query string false "Filter by type (note or pastpaper)"
// @Param year query int false "Filter by year"
// @Param examType query string false "Filter by exam type"
// @Success 200 {object} dto.APIResponse{data=[]models.Note}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes [get]
func (c *NoteController) GetNotes(ctx *gin.Context) {
	var filter dto.NoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	notes, err := c.noteService.List(ctx, currentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notes})
}

// GetNoteByID godoc
// @Summary Get a note by ID
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=models.Note}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [get]
func (c *NoteController) GetNoteByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	note, err := c.noteService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: note})
}

// UploadNote godoc
// @Summary Upload a note directly
// @Description Publish a note without moderation; teachers and admins only
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Note file (PDF, PNG or JPEG, max 10 MB)"
// @Param title formData string true "Title"
// @Param subject formData string true "Subject"
// @Param department formData string true "Department"
// @Param semester formData int true "Semester (1-8)"
// @Success 201 {object} dto.APIResponse{data=dto.UploadNoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/upload [post]
func (c *NoteController) UploadNote(ctx *gin.Context) {
	var meta dto.UploadNoteRequest
	if err := ctx.ShouldBind(&meta); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid upload form"),
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file is required"))
		return
	}

	note, err := c.noteService.Upload(ctx, currentActor(ctx), &meta, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.UploadNoteResponse{
		Message: "Note uploaded successfully",
		Note:    note,
		FileURL: note.FileURL,
	}})
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	if err := c.noteService.Delete(ctx, currentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Note deleted successfully"}})
}

// DownloadNote godoc
// @Summary Download a note file
// @Description Resolve a stored filename back to its note and redirect to the file
// @Tags notes
// @Produce json
// @Param filename path string true "Stored filename"
// @Success 302
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/download/{filename} [get]
func (c *NoteController) DownloadNote(ctx *gin.Context) {
	filename := ctx.Param("filename")
	if filename == "" {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filename"),
		})
		return
	}

	note, err := c.noteService.ResolveDownload(ctx, filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, note.FileURL)
}

package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/services"
	"github.com/mertc/notebook/internal/middleware"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController      *AuthController
	CollegeController   *CollegeController
	NoteController      *NoteController
	RequestController   *RequestController
	SummarizeController *SummarizeController
}

// NewControllers initializes all controllers
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:      NewAuthController(svcs.AuthService),
		CollegeController:   NewCollegeController(svcs.CollegeService),
		NoteController:      NewNoteController(svcs.NoteService),
		RequestController:   NewRequestController(svcs.RequestService),
		SummarizeController: NewSummarizeController(svcs.SummarizeService),
	}
}

// parseIDParam parses an ID parameter from the request path. Identifiers are
// positive, so zero and negative values are rejected alongside non-numeric
// input.
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", paramName, id)
	}
	return id, nil
}

// currentActor reads the authenticated caller set by the JWT middleware.
func currentActor(ctx *gin.Context) services.Actor {
	roleStr, _ := ctx.MustGet(middleware.ContextRoleType).(string)
	return services.Actor{
		UserID:    ctx.GetInt64(middleware.ContextUserID),
		Role:      models.RoleType(roleStr),
		CollegeID: ctx.GetInt64(middleware.ContextCollegeID),
	}
}

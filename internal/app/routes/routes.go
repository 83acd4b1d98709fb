package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mertc/notebook/internal/app/controllers"
	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrls.AuthController.Register)
		auth.POST("/login", ctrls.AuthController.Login)
	}

	// --- Public College routes ---
	api.GET("/colleges", ctrls.CollegeController.GetColleges)

	// Downloads resolve by stored filename and redirect; files are served
	// publicly, so the lookup is too.
	api.GET("/notes/download/:filename", ctrls.NoteController.DownloadNote)

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", ctrls.AuthController.Me)
		authenticated.POST("/colleges", ctrls.CollegeController.CreateCollege)

		notes := authenticated.Group("/notes")
		{
			notes.GET("", ctrls.NoteController.GetNotes)
			notes.GET("/:id", ctrls.NoteController.GetNoteByID)
			notes.POST("/upload", ctrls.NoteController.UploadNote)
			notes.DELETE("/:id", ctrls.NoteController.DeleteNote)
		}

		requests := authenticated.Group("/requests")
		{
			requests.POST("", ctrls.RequestController.SubmitRequest)
			requests.GET("/my", ctrls.RequestController.GetMyRequests)

			// Review queue routes; the services re-check the policy so a
			// misconfigured route still cannot leak decisions.
			review := requests.Group("")
			review.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
			{
				review.GET("/pending", ctrls.RequestController.GetPendingRequests)
				review.GET("/reviewed", ctrls.RequestController.GetReviewedRequests)
				review.PUT("/:id/approve", ctrls.RequestController.ApproveRequest)
				review.PUT("/:id/reject", ctrls.RequestController.RejectRequest)
			}
		}

		authenticated.POST("/summarize", ctrls.SummarizeController.Summarize)
	}
}

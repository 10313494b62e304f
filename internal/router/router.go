package router

import (
	"time"

	"github.com/collabsphere/collabsphere/internal/handlers"
	"github.com/collabsphere/collabsphere/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(h.Log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireUser := middleware.AuthMiddleware(h.Users)
	optionalUser := middleware.OptionalAuth(h.Users)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/ws", requireUser, h.Hub.ServeWS)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", requireUser, h.Me)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", h.ListProjects)
			projects.POST("", requireUser, h.CreateProject)
			projects.GET("/:project_id", optionalUser, h.GetProject)
			projects.POST("/:project_id/apply", requireUser, h.ApplyToProject)
			projects.POST("/:project_id/close", requireUser, h.CloseProject)
			projects.POST("/:project_id/feedback", requireUser, h.AddFeedback)

			// Applicant management
			projects.GET("/:project_id/applicants", requireUser, h.ListApplicants)
			projects.POST("/:project_id/applicants/:user_id/accept", requireUser, h.AcceptApplicant())
			projects.POST("/:project_id/applicants/:user_id/reject", requireUser, h.RejectApplicant())
		}

		admin := api.Group("/admin", requireUser, middleware.RequireAdmin())
		{
			admin.GET("/projects", h.ListPendingProjects)
			admin.GET("/pending-count", h.PendingProjectCount)
			admin.POST("/projects/:project_id/approve", h.ApproveProject)
			admin.POST("/projects/:project_id/reject", h.RejectProject)
		}

		notifications := api.Group("/notifications", requireUser)
		{
			notifications.GET("", h.ListNotifications)
			notifications.GET("/unread-count", h.UnreadNotificationCount)
			notifications.POST("/:notification_id/read", h.MarkNotificationRead)
		}

		profile := api.Group("/profile", requireUser)
		{
			profile.GET("", h.GetProfile)
			profile.PATCH("", h.UpdateProfile)
			profile.GET("/projects", h.MyProjects)
			profile.GET("/applications", h.MyApplications)
		}
	}

	return r
}

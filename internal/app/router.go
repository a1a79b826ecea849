package app

import (
	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/middleware"
	"campus_voice_backend/internal/permission"
	"campus_voice_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/categories", c.category.List)
	}
}

func (a *App) registerStudentRoutes(r *gin.RouterGroup, c *controllers) {
	allow := middleware.RequireOperation

	r.GET("/user/profile", allow(permission.ViewProfile), c.auth.GetProfile)

	feedback := r.Group("/feedback")
	{
		feedback.POST("", allow(permission.SubmitFeedback), c.feedback.Submit)
		feedback.GET("", allow(permission.ListOwnFeedback), c.feedback.ListMine)
		feedback.GET("/:id", allow(permission.ViewFeedback), c.feedback.Get)
		feedback.POST("/:id/comments", allow(permission.CommentFeedback), c.feedback.AddComment)
		feedback.POST("/:id/vote", allow(permission.VoteFeedback), c.feedback.Vote)
	}

	r.GET("/dashboard/stats", allow(permission.ViewStats), c.dashboard.GetStats)

	notifications := r.Group("/notifications", allow(permission.ManageInbox))
	{
		notifications.GET("", c.notification.List)
		notifications.PUT("/read-all", c.notification.MarkAllRead)
		notifications.PUT("/:id/read", c.notification.MarkRead)
	}
}

func (a *App) registerAdminRoutes(r *gin.RouterGroup, c *controllers) {
	admin := r.Group("/admin")
	{
		admin.GET("/feedback", middleware.RequireOperation(permission.ListAllFeedback), c.feedback.ListAll)
		admin.PUT("/feedback/:id/status", middleware.RequireOperation(permission.TransitionFeedback), c.feedback.UpdateStatus)
	}
}

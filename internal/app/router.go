package app

import (
	"rizhub_backend/docs"
	"rizhub_backend/internal/config"
	"rizhub_backend/internal/middleware"
	"rizhub_backend/internal/model"
	"rizhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no token required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Everything a logged-in student uses.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.user.Profile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.PUT("/user/password", c.user.ChangePassword)
		authGroup.POST("/user/avatar", c.user.UploadAvatar)
		authGroup.DELETE("/user/account", c.user.DeleteAccount)

		authGroup.GET("/challenges", c.kabanata.ChallengeList)
		authGroup.GET("/kabanatas", c.kabanata.List)
		authGroup.GET("/kabanatas/:id", c.kabanata.Detail)
		authGroup.GET("/kabanatas/:id/quizzes", c.kabanata.Quizzes)
		authGroup.GET("/kabanatas/:id/guesswords", c.kabanata.GuessWords)
		authGroup.GET("/kabanatas/:id/videos", c.kabanata.Videos)

		authGroup.POST("/quiz/save-progress", c.progress.StageQuiz)
		authGroup.POST("/guessword/save-progress", c.progress.StageWordGuess)
		authGroup.POST("/video/save-progress", c.progress.StageVideo)
		authGroup.POST("/quiz/complete", c.progress.Complete)
		authGroup.POST("/challenge/complete", c.progress.Complete)
		authGroup.POST("/chapter/:kabanataId/reset", c.progress.Reset)

		authGroup.GET("/gallery", c.gallery.List)

		authGroup.GET("/notifications", c.notification.List)
		authGroup.POST("/notifications/read-all", c.notification.MarkAllRead)
		authGroup.PATCH("/notifications/:id/read", c.notification.MarkRead)
		authGroup.PATCH("/notifications/:id/unread", c.notification.MarkUnread)
		authGroup.DELETE("/notifications/:id", c.notification.Delete)
		authGroup.DELETE("/notifications", c.notification.DeleteAll)
	}

	// Content management, admins only.
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.POST("/kabanatas", c.content.CreateKabanata)
		adminGroup.POST("/quizzes", c.content.CreateQuiz)
		adminGroup.POST("/guesswords", c.content.CreateGuessWord)
		adminGroup.POST("/characters", c.content.CreateCharacter)
		adminGroup.POST("/gallery/upload", c.content.CreateGalleryImage)
		adminGroup.POST("/videos/upload", c.content.UploadVideo)
	}
}

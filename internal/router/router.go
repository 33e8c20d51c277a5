package router

import (
	"jokehub/internal/handlers"
	"jokehub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	jokeHandler := handlers.NewJokeHandler()
	commentHandler := handlers.NewCommentHandler()
	categoryHandler := handlers.NewCategoryHandler()
	relationHandler := handlers.NewRelationHandler()
	userHandler := handlers.NewUserHandler()
	notificationHandler := handlers.NewNotificationHandler()
	reportHandler := handlers.NewReportHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	// Public routes
	api.GET("/jokes", jokeHandler.List)                   // approved jokes, filtered + paginated
	api.GET("/jokes/:id", jokeHandler.Detail)             // single joke, counts the visit
	api.GET("/jokes/:id/comments", commentHandler.List)   // comment thread
	api.GET("/categories", categoryHandler.List)          // active categories
	api.GET("/categories/:slug", categoryHandler.BySlug)  // category by slug
	api.GET("/users/:id", userHandler.Profile)            // public profile
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/session", authHandler.Session)

	// Authenticated routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/auth/logout", authHandler.Logout)
		authorized.PUT("/profile", userHandler.UpdateProfile)

		authorized.POST("/jokes", jokeHandler.Submit)                    // submit for review
		authorized.POST("/jokes/:id/like", relationHandler.ToggleLike)   // like/unlike
		authorized.POST("/jokes/:id/save", relationHandler.ToggleSave)   // save/unsave
		authorized.GET("/saved", relationHandler.ListSaved)              // my saved jokes
		authorized.POST("/jokes/:id/comments", commentHandler.Create)    // comment or reply
		authorized.PUT("/comments/:id", commentHandler.Update)           // edit own comment
		authorized.DELETE("/comments/:id", commentHandler.Delete)        // delete own comment
		authorized.POST("/jokes/:id/report", reportHandler.Create)       // report a joke

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/jokes", jokeHandler.List) // same listing; admins may filter by status
		admin.POST("/jokes/:id/approve", adminHandler.Approve)
		admin.POST("/jokes/:id/reject", adminHandler.Reject)
		admin.PUT("/jokes/:id", adminHandler.Edit)
		admin.DELETE("/jokes/:id", adminHandler.Delete)

		admin.GET("/reports", adminHandler.ListReports)
		admin.POST("/reports/:id/resolve", adminHandler.ResolveReport)

		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
	}
}

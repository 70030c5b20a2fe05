package router

import "github.com/gin-gonic/gin"

func (r *Router) adminRoutes(version *gin.RouterGroup) {
	admin := version.Group("/admin")
	admin.Use(r.authMw.RequireAuth(), r.authMw.RequireAdmin())
	{
		questions := admin.Group("/questions")
		{
			questions.GET("", r.adminHandler.ListQuestions)
			questions.POST("", r.adminHandler.CreateQuestion)
			questions.POST("/bulk-import", r.adminHandler.BulkImport)
			questions.GET("/export", r.adminHandler.Export)
			questions.PUT("/:id", r.adminHandler.UpdateQuestion)
			questions.DELETE("/:id", r.adminHandler.DeleteQuestion)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", r.adminHandler.ListCategories)
			categories.POST("", r.adminHandler.CreateCategory)
			categories.PUT("/:id", r.adminHandler.UpdateCategory)
			categories.DELETE("/:id", r.adminHandler.DeleteCategory)
		}

		users := admin.Group("/users")
		{
			users.GET("", r.adminHandler.ListUsers)
			users.PUT("/:id/active", r.adminHandler.SetUserActive)
		}

		admin.GET("/statistics", r.adminHandler.Statistics)
		admin.GET("/analytics/performance", r.adminHandler.PerformanceAnalytics)
	}
}

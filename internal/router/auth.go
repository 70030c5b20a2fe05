package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)

		// Protected routes (JWT authentication required)
		protected := auth.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("/refresh", r.authHandler.Refresh)
			protected.GET("/me", r.authHandler.Me)
			protected.PUT("/me", r.authHandler.UpdateMe)
			protected.POST("/change-password", r.authHandler.ChangePassword)
		}
	}
}

// routes/auth.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
	"github.com/venkatesh1545/drone-x-alert-now/middleware"
)

// SetupAuthRoutes configures authentication routes. Login and signup
// carry their own tighter rate limit; refresh and the authenticated
// endpoints ride on the global limit.
func SetupAuthRoutes(router *gin.RouterGroup, authController *controllers.AuthController, redisClient *redis.Client) {
	auth := router.Group("/auth")
	{
		throttled := auth.Group("")
		throttled.Use(middleware.AuthRateLimit(redisClient))
		{
			throttled.POST("/register", authController.Register)
			throttled.POST("/login", authController.Login)
		}

		auth.POST("/refresh", authController.RefreshToken)
	}
}

// SetupAuthenticatedAuthRoutes configures auth endpoints that require
// a valid token.
func SetupAuthenticatedAuthRoutes(router *gin.RouterGroup, authController *controllers.AuthController) {
	auth := router.Group("/auth")
	{
		auth.GET("/me", authController.Me)
		auth.POST("/change-password", authController.ChangePassword)
	}
}

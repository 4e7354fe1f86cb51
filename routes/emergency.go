// routes/emergency.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
)

// SetupEmergencyRoutes configures emergency request routes
func SetupEmergencyRoutes(router *gin.RouterGroup, emergencyController *controllers.EmergencyController, authMiddleware *middleware.AuthMiddleware, redisClient *redis.Client) {
	requests := router.Group("/emergency/requests")
	{
		// Filing is throttled per user so one account cannot flood
		// dispatch.
		requests.POST("", middleware.EmergencyRateLimit(redisClient), emergencyController.CreateRequest)

		requests.GET("/mine", emergencyController.GetMyRequests)
		requests.GET("/:id", emergencyController.GetRequest)
		requests.PUT("/:id", emergencyController.UpdateRequest)
		requests.POST("/:id/cancel", emergencyController.CancelRequest)

		// The full queue is responder and operator territory.
		requests.GET("", authMiddleware.RequireRole(models.RoleRescueTeam, models.RoleAdmin), emergencyController.ListRequests)
	}
}

// routes/chat.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
	"github.com/venkatesh1545/drone-x-alert-now/middleware"
)

// SetupChatRoutes configures the guidance assistant routes
func SetupChatRoutes(router *gin.RouterGroup, chatController *controllers.ChatController, redisClient *redis.Client) {
	chat := router.Group("/chat")
	{
		chat.POST("/messages", middleware.ChatRateLimit(redisClient), chatController.SendMessage)
		chat.GET("/messages", chatController.GetHistory)
	}
}

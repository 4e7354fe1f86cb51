// routes/websocket.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
	"github.com/venkatesh1545/drone-x-alert-now/middleware"
)

// SetupWebSocketRoutes configures the realtime feed endpoint. Auth
// happens inside the handler from the token query parameter, not in
// middleware, because the connection has to be rejected before the
// upgrade.
func SetupWebSocketRoutes(router *gin.Engine, wsController *controllers.WebSocketController, redisClient *redis.Client) {
	router.GET("/ws", middleware.WebSocketRateLimit(redisClient), wsController.HandleConnection)
}

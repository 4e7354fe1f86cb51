// routes/notification.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
)

// SetupNotificationRoutes configures notification routes
func SetupNotificationRoutes(router *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", notificationController.GetMyNotifications)
		notifications.POST("/:id/read", notificationController.MarkRead)
	}
}

// routes/admin.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
)

// SetupAdminRoutes configures operator-only routes
func SetupAdminRoutes(router *gin.RouterGroup, adminController *controllers.AdminController, authMiddleware *middleware.AuthMiddleware) {
	admin := router.Group("/admin")
	admin.Use(authMiddleware.RequireAuth())
	admin.Use(authMiddleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/roles/grant", adminController.GrantRole)
		admin.POST("/roles/revoke", adminController.RevokeRole)
		admin.GET("/roles/check", adminController.HasRole)

		admin.GET("/users", adminController.ListUsers)
		admin.GET("/users/:id/roles", adminController.GetUserRoles)

		admin.POST("/streams", adminController.RegisterStream)
		admin.GET("/streams", adminController.ListStreams)
		admin.GET("/streams/:id", adminController.GetStream)
		admin.PUT("/streams/:id/status", adminController.UpdateStreamStatus)
		admin.DELETE("/streams/:id", adminController.DeleteStream)

		admin.GET("/dashboard", adminController.GetDashboardStats)
		admin.POST("/requests/:id/assign", adminController.ManualAssign)
	}
}

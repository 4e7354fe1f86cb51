// routes/user.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
)

// SetupUserRoutes configures profile routes. Device token registration
// for push delivery goes through the profile update.
func SetupUserRoutes(router *gin.RouterGroup, userController *controllers.UserController) {
	users := router.Group("/users")
	{
		users.GET("/me", userController.GetProfile)
		users.PUT("/me", userController.UpdateProfile)
	}
}

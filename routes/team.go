// routes/team.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
)

// SetupTeamRoutes configures rescue team routes
func SetupTeamRoutes(router *gin.RouterGroup, teamController *controllers.TeamController, authMiddleware *middleware.AuthMiddleware, redisClient *redis.Client) {
	teams := router.Group("/teams")
	teams.Use(authMiddleware.RequireRole(models.RoleRescueTeam, models.RoleAdmin))
	{
		teams.POST("", teamController.RegisterTeam)
		teams.GET("", teamController.ListTeams)
		teams.GET("/mine", teamController.GetMyTeam)
		teams.PUT("/mine", teamController.UpdateTeam)
		teams.PUT("/mine/status", teamController.UpdateStatus)
		teams.PUT("/mine/location", middleware.LocationRateLimit(redisClient), teamController.ReportLocation)
		teams.GET("/:id", teamController.GetTeam)
	}
}

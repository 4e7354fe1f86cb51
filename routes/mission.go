// routes/mission.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/controllers"
	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
)

// SetupMissionRoutes configures rescue mission routes
func SetupMissionRoutes(router *gin.RouterGroup, missionController *controllers.MissionController, authMiddleware *middleware.AuthMiddleware) {
	missions := router.Group("/missions")
	missions.Use(authMiddleware.RequireRole(models.RoleRescueTeam, models.RoleAdmin))
	{
		missions.GET("", missionController.ListMissions)
		missions.GET("/mine", missionController.GetMyMissions)
		missions.GET("/mine/active", missionController.GetActiveMission)
		missions.GET("/:id", missionController.GetMission)
		missions.PUT("/:id/status", missionController.UpdateStatus)
		missions.PUT("/:id/notes", missionController.UpdateNotes)
	}
}

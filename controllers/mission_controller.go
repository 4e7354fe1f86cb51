// controllers/mission_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

type MissionController struct {
	missionService *services.MissionService
}

func NewMissionController(missionService *services.MissionService) *MissionController {
	return &MissionController{
		missionService: missionService,
	}
}

// GetMission returns one mission
// @Summary Get a rescue mission
// @Tags Missions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} models.APIResponse{data=models.RescueMission}
// @Router /missions/{id} [get]
func (mc *MissionController) GetMission(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	mission, err := mc.missionService.GetMission(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Mission retrieved", mission)
}

// GetMyMissions lists the caller team's mission history
// @Summary List my team's missions
// @Tags Missions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /missions/mine [get]
func (mc *MissionController) GetMyMissions(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	missions, err := mc.missionService.GetMyMissions(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Missions retrieved", missions)
}

// GetActiveMission returns the caller team's current mission
// @Summary Get my team's active mission
// @Tags Missions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.RescueMission}
// @Router /missions/mine/active [get]
func (mc *MissionController) GetActiveMission(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	mission, err := mc.missionService.GetActiveMission(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Active mission retrieved", mission)
}

// ListMissions is the admin view
// @Summary List rescue missions
// @Tags Missions
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} models.APIResponse
// @Router /missions [get]
func (mc *MissionController) ListMissions(c *gin.Context) {
	page, pageSize := parsePagination(c)

	missions, total, err := mc.missionService.ListMissions(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Missions retrieved", missions, utils.CreatePaginationMeta(page, pageSize, total))
}

// UpdateStatus moves a mission through its lifecycle
// @Summary Update mission status
// @Tags Missions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Mission ID"
// @Param request body models.UpdateMissionStatusRequest true "New status"
// @Success 200 {object} models.APIResponse{data=models.RescueMission}
// @Failure 409 {object} models.APIResponse
// @Router /missions/{id}/status [put]
func (mc *MissionController) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.UpdateMissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	mission, err := mc.missionService.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Mission status updated", mission)
}

// UpdateNotes edits mission notes
// @Summary Update mission notes
// @Tags Missions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Mission ID"
// @Param request body models.UpdateMissionNotesRequest true "Notes"
// @Success 200 {object} models.APIResponse{data=models.RescueMission}
// @Router /missions/{id}/notes [put]
func (mc *MissionController) UpdateNotes(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.UpdateMissionNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	mission, err := mc.missionService.UpdateNotes(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Mission notes updated", mission)
}

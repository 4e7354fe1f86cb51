// controllers/team_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

type TeamController struct {
	teamService *services.TeamService
}

func NewTeamController(teamService *services.TeamService) *TeamController {
	return &TeamController{
		teamService: teamService,
	}
}

// RegisterTeam creates the caller's rescue team
// @Summary Register a rescue team
// @Tags Teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.RegisterTeamRequest true "Team details"
// @Success 201 {object} models.APIResponse{data=models.RescueTeam}
// @Failure 409 {object} models.APIResponse
// @Router /teams [post]
func (tc *TeamController) RegisterTeam(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	team, err := tc.teamService.RegisterTeam(c.Request.Context(), userID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Rescue team registered", team)
}

// GetMyTeam returns the caller's team
// @Summary Get my rescue team
// @Tags Teams
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.RescueTeam}
// @Router /teams/mine [get]
func (tc *TeamController) GetMyTeam(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	team, err := tc.teamService.GetMyTeam(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Team retrieved", team)
}

// GetTeam returns one team by ID
// @Summary Get a rescue team
// @Tags Teams
// @Security BearerAuth
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} models.APIResponse{data=models.RescueTeam}
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	team, err := tc.teamService.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Team retrieved", team)
}

// ListTeams lists teams with optional status filter
// @Summary List rescue teams
// @Tags Teams
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} models.APIResponse
// @Router /teams [get]
func (tc *TeamController) ListTeams(c *gin.Context) {
	page, pageSize := parsePagination(c)

	teams, total, err := tc.teamService.ListTeams(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Teams retrieved", teams, utils.CreatePaginationMeta(page, pageSize, total))
}

// UpdateTeam edits the caller's team profile
// @Summary Update my rescue team
// @Tags Teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateTeamRequest true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.RescueTeam}
// @Router /teams/mine [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	team, err := tc.teamService.UpdateTeam(c.Request.Context(), userID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Team updated", team)
}

// UpdateStatus changes the caller team's availability
// @Summary Update team status
// @Tags Teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateTeamStatusRequest true "New status"
// @Success 200 {object} models.APIResponse{data=models.RescueTeam}
// @Failure 409 {object} models.APIResponse
// @Router /teams/mine/status [put]
func (tc *TeamController) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.UpdateTeamStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	team, err := tc.teamService.UpdateStatus(c.Request.Context(), userID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Team status updated", team)
}

// ReportLocation records the caller team's position
// @Summary Report team location
// @Tags Teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ReportLocationRequest true "Coordinates"
// @Success 200 {object} models.APIResponse
// @Router /teams/mine/location [put]
func (tc *TeamController) ReportLocation(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.ReportLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := tc.teamService.ReportLocation(c.Request.Context(), userID, req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location reported", nil)
}

// controllers/admin_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

// AdminController groups the operator-only surface: role management,
// drone stream registry, manual dispatch, and the dashboard.
type AdminController struct {
	roleService       *services.RoleService
	droneService      *services.DroneService
	statsService      *services.StatsService
	userService       *services.UserService
	assignmentService *services.AssignmentService
}

func NewAdminController(
	roleService *services.RoleService,
	droneService *services.DroneService,
	statsService *services.StatsService,
	userService *services.UserService,
	assignmentService *services.AssignmentService,
) *AdminController {
	return &AdminController{
		roleService:       roleService,
		droneService:      droneService,
		statsService:      statsService,
		userService:       userService,
		assignmentService: assignmentService,
	}
}

// GrantRole assigns a role to a user
// @Summary Grant a role
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.GrantRoleRequest true "Role grant"
// @Success 200 {object} models.APIResponse
// @Router /admin/roles/grant [post]
func (ac *AdminController) GrantRole(c *gin.Context) {
	adminID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := ac.roleService.GrantRole(c.Request.Context(), adminID, req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Role granted", nil)
}

// RevokeRole removes a role from a user
// @Summary Revoke a role
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.RevokeRoleRequest true "Role revocation"
// @Success 200 {object} models.APIResponse
// @Router /admin/roles/revoke [post]
func (ac *AdminController) RevokeRole(c *gin.Context) {
	adminID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.RevokeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := ac.roleService.RevokeRole(c.Request.Context(), adminID, req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Role revoked", nil)
}

// HasRole checks a single user/role pair
// @Summary Check whether a user holds a role
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param userId query string true "User ID"
// @Param role query string true "Role name"
// @Success 200 {object} models.APIResponse{data=models.HasRoleResponse}
// @Router /admin/roles/check [get]
func (ac *AdminController) HasRole(c *gin.Context) {
	userID := c.Query("userId")
	role := c.Query("role")
	if userID == "" || role == "" {
		utils.BadRequestResponse(c, "userId and role query parameters are required")
		return
	}

	result, err := ac.roleService.HasRole(c.Request.Context(), userID, role)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Role check complete", result)
}

// GetUserRoles lists a user's roles
// @Summary List a user's roles
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.APIResponse
// @Router /admin/users/{id}/roles [get]
func (ac *AdminController) GetUserRoles(c *gin.Context) {
	roles, err := ac.roleService.GetUserRoles(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Roles retrieved", gin.H{"roles": roles})
}

// ListUsers pages through all accounts
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /admin/users [get]
func (ac *AdminController) ListUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	users, total, err := ac.userService.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Users retrieved", users, utils.CreatePaginationMeta(page, pageSize, total))
}

// RegisterStream adds a drone stream to the registry
// @Summary Register a drone stream
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.RegisterStreamRequest true "Stream details"
// @Success 201 {object} models.APIResponse{data=models.DroneStream}
// @Router /admin/streams [post]
func (ac *AdminController) RegisterStream(c *gin.Context) {
	adminID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.RegisterStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	stream, err := ac.droneService.RegisterStream(c.Request.Context(), adminID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Drone stream registered", stream)
}

// GetStream returns one drone stream
// @Summary Get a drone stream
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Stream ID"
// @Success 200 {object} models.APIResponse{data=models.DroneStream}
// @Router /admin/streams/{id} [get]
func (ac *AdminController) GetStream(c *gin.Context) {
	stream, err := ac.droneService.GetStream(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Stream retrieved", stream)
}

// ListStreams lists drone streams with optional status filter
// @Summary List drone streams
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} models.APIResponse
// @Router /admin/streams [get]
func (ac *AdminController) ListStreams(c *gin.Context) {
	streams, err := ac.droneService.ListStreams(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Streams retrieved", streams)
}

// UpdateStreamStatus flips a stream online/offline
// @Summary Update drone stream status
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Stream ID"
// @Param request body models.UpdateStreamStatusRequest true "New status"
// @Success 200 {object} models.APIResponse{data=models.DroneStream}
// @Router /admin/streams/{id}/status [put]
func (ac *AdminController) UpdateStreamStatus(c *gin.Context) {
	var req models.UpdateStreamStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	stream, err := ac.droneService.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Stream status updated", stream)
}

// DeleteStream removes a stream from the registry
// @Summary Delete a drone stream
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Stream ID"
// @Success 200 {object} models.APIResponse
// @Router /admin/streams/{id} [delete]
func (ac *AdminController) DeleteStream(c *gin.Context) {
	if err := ac.droneService.DeleteStream(c.Request.Context(), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Stream deleted", nil)
}

// GetDashboardStats aggregates counts across the system
// @Summary Dashboard statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DashboardStats}
// @Router /admin/dashboard [get]
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.statsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard statistics retrieved", stats)
}

// ManualAssign lets an operator pin a request to a specific team
// @Summary Manually assign a rescue team
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body models.ManualAssignRequest true "Target team"
// @Success 200 {object} models.APIResponse{data=models.AssignmentResult}
// @Failure 409 {object} models.APIResponse
// @Router /admin/requests/{id}/assign [post]
func (ac *AdminController) ManualAssign(c *gin.Context) {
	var req models.ManualAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	result, err := ac.assignmentService.ManualAssign(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Team assigned", result)
}

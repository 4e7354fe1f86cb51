// controllers/emergency_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

type EmergencyController struct {
	emergencyService  *services.EmergencyService
	assignmentService *services.AssignmentService
	authMiddleware    *middleware.AuthMiddleware
}

func NewEmergencyController(
	emergencyService *services.EmergencyService,
	assignmentService *services.AssignmentService,
	authMiddleware *middleware.AuthMiddleware,
) *EmergencyController {
	return &EmergencyController{
		emergencyService:  emergencyService,
		assignmentService: assignmentService,
		authMiddleware:    authMiddleware,
	}
}

// CreateRequest files an emergency request and immediately attempts
// dispatch
// @Summary File an emergency request
// @Tags Emergency
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateEmergencyRequestRequest true "Emergency details"
// @Success 201 {object} models.APIResponse{data=models.EmergencyRequest}
// @Router /emergency/requests [post]
func (ec *EmergencyController) CreateRequest(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.CreateEmergencyRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	request, err := ec.emergencyService.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	// Dispatch is best-effort here; the cron sweep picks up anything
	// missed.
	assignment, err := ec.assignmentService.AutoAssign(c.Request.Context(), request.ID.Hex())
	if err != nil {
		assignment = &models.AssignmentResult{Assigned: false}
	}

	utils.CreatedResponse(c, "Emergency request filed", gin.H{
		"request":    request,
		"assignment": assignment,
	})
}

// GetRequest returns one request
// @Summary Get an emergency request
// @Tags Emergency
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} models.APIResponse{data=models.EmergencyRequest}
// @Router /emergency/requests/{id} [get]
func (ec *EmergencyController) GetRequest(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	request, err := ec.emergencyService.GetRequest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Request retrieved", request)
}

// GetMyRequests lists the caller's requests
// @Summary List my emergency requests
// @Tags Emergency
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /emergency/requests/mine [get]
func (ec *EmergencyController) GetMyRequests(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	requests, err := ec.emergencyService.GetMyRequests(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Requests retrieved", requests)
}

// ListRequests is the responder/admin view
// @Summary List emergency requests
// @Tags Emergency
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param type query string false "Filter by emergency type"
// @Success 200 {object} models.APIResponse
// @Router /emergency/requests [get]
func (ec *EmergencyController) ListRequests(c *gin.Context) {
	var filter models.EmergencyRequestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}

	page, pageSize := parsePagination(c)

	requests, total, err := ec.emergencyService.ListRequests(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Requests retrieved", requests, utils.CreatePaginationMeta(page, pageSize, total))
}

// UpdateRequest edits a pending request
// @Summary Update an emergency request
// @Tags Emergency
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body models.UpdateEmergencyRequestRequest true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.EmergencyRequest}
// @Router /emergency/requests/{id} [put]
func (ec *EmergencyController) UpdateRequest(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.UpdateEmergencyRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	request, err := ec.emergencyService.UpdateRequest(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Request updated", request)
}

// CancelRequest cancels a request and any active mission
// @Summary Cancel an emergency request
// @Tags Emergency
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} models.APIResponse{data=models.EmergencyRequest}
// @Router /emergency/requests/{id}/cancel [post]
func (ec *EmergencyController) CancelRequest(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	isAdmin := ec.authMiddleware.HasRole(c.Request.Context(), userID, models.RoleAdmin)

	request, err := ec.emergencyService.CancelRequest(c.Request.Context(), userID, c.Param("id"), isAdmin)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Request cancelled", request)
}

// parsePagination reads page/pageSize query params with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return utils.DefaultPagination(page, pageSize)
}

// controllers/notification_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

type NotificationController struct {
	notificationService *services.NotificationService
}

func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// GetMyNotifications lists the caller's notifications, newest first
// @Summary List my notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /notifications [get]
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	page, pageSize := parsePagination(c)

	notifications, total, err := nc.notificationService.GetMyNotifications(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Notifications retrieved", notifications, utils.CreatePaginationMeta(page, pageSize, total))
}

// MarkRead marks one of the caller's notifications as read
// @Summary Mark a notification read
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} models.APIResponse
// @Router /notifications/{id}/read [post]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := nc.notificationService.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification marked read", nil)
}

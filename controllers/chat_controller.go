// controllers/chat_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// SendMessage submits a message to the guidance assistant and returns
// both the stored user turn and the assistant reply
// @Summary Send a chat message
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SendChatMessageRequest true "Message"
// @Success 200 {object} models.APIResponse{data=models.ChatExchange}
// @Router /chat/messages [post]
func (cc *ChatController) SendMessage(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	exchange, err := cc.chatService.SendMessage(c.Request.Context(), userID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Message sent", exchange)
}

// GetHistory returns the caller's chat transcript, oldest first
// @Summary Get chat history
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /chat/messages [get]
func (cc *ChatController) GetHistory(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	messages, err := cc.chatService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Chat history retrieved", messages)
}

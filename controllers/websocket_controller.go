// controllers/websocket_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser origin checks are handled by the CORS layer; native
		// clients send no Origin header at all.
		return true
	},
}

type WebSocketController struct {
	hub            *websocket.Hub
	authMiddleware *middleware.AuthMiddleware
}

func NewWebSocketController(hub *websocket.Hub, authMiddleware *middleware.AuthMiddleware) *WebSocketController {
	return &WebSocketController{
		hub:            hub,
		authMiddleware: authMiddleware,
	}
}

// HandleConnection upgrades the request and serves the realtime feed.
// Auth comes from the token query parameter since browsers cannot set
// headers on websocket upgrades.
// @Summary Realtime change feed
// @Tags WebSocket
// @Param token query string true "Access token"
// @Router /ws [get]
func (wc *WebSocketController) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.UnauthorizedResponse(c, "Token query parameter is required")
		return
	}

	user, err := wc.authMiddleware.WebSocketAuth(token)
	if err != nil {
		utils.UnauthorizedResponse(c, "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID.Hex(),
		"ip":      c.ClientIP(),
	}).Info("🔌 WebSocket client connected")

	client := websocket.NewClient(wc.hub, conn, user.ID.Hex())
	client.Start()
}

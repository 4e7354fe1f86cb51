// controllers/health_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venkatesh1545/drone-x-alert-now/database"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

type HealthController struct {
	hub       *websocket.Hub
	startedAt time.Time
}

func NewHealthController(hub *websocket.Hub) *HealthController {
	return &HealthController{
		hub:       hub,
		startedAt: time.Now(),
	}
}

// Health reports process and database liveness
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	db := database.HealthCheck()

	status := http.StatusOK
	if db["status"] != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":            db["status"],
		"database":          db,
		"uptime":            time.Since(hc.startedAt).String(),
		"websocket_clients": hc.hub.ConnectedClients(),
		"timestamp":         time.Now().UTC(),
	})
}

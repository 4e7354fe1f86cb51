package websocket

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/venkatesh1545/drone-x-alert-now/models"
)

// Hub fans change events out to subscribed clients. Delivery is
// best-effort: a client whose send buffer is full is dropped rather
// than allowed to stall the broadcast loop.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	changes    chan models.ChangeEvent

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		changes:    make(chan models.ChangeEvent, 256),
	}
}

func (h *Hub) Run() {
	logrus.Info("🔄 WebSocket hub started")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logrus.Debugf("WebSocket client connected: %s", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logrus.Debugf("WebSocket client disconnected: %s", client.userID)

		case event := <-h.changes:
			h.broadcast(event)
		}
	}
}

// PublishChange queues a change event for broadcast. Never blocks the
// caller; if the hub is saturated the event is dropped, which is
// acceptable because events are re-fetch hints rather than state.
func (h *Hub) PublishChange(event models.ChangeEvent) {
	select {
	case h.changes <- event:
	default:
		logrus.Warnf("WebSocket hub saturated, dropping %s/%s event", event.Relation, event.Action)
	}
}

func (h *Hub) broadcast(event models.ChangeEvent) {
	frame := models.WSMessage{
		Type:      models.WSTypeChange,
		Relation:  event.Relation,
		Action:    event.Action,
		Data:      event,
		Timestamp: time.Now(),
	}

	h.mu.RLock()
	var stalled []*Client
	for client := range h.clients {
		if !client.wantsEvent(event) {
			continue
		}
		select {
		case client.send <- frame:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	// Remove stalled clients inline; going through the unregister
	// channel here would deadlock the run loop.
	for _, client := range stalled {
		h.mu.Lock()
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			close(client.send)
		}
		h.mu.Unlock()
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) ConnectedClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

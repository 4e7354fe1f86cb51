package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/venkatesh1545/drone-x-alert-now/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one authenticated websocket connection. A client receives
// nothing until it subscribes to at least one relation.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan models.WSMessage
	userID string

	mu            sync.RWMutex
	subscriptions map[string]models.SubscribeRequest
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan models.WSMessage, 64),
		userID:        userID,
		subscriptions: make(map[string]models.SubscribeRequest),
	}
}

// Start registers the client and runs both pumps. Blocks until the
// connection closes.
func (c *Client) Start() {
	c.hub.Register(c)
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame models.WSMessage
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.Warnf("WebSocket read error for %s: %v", c.userID, err)
			}
			return
		}
		c.handleFrame(frame)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleFrame(frame models.WSMessage) {
	switch frame.Type {
	case models.WSTypeSubscribe:
		c.handleSubscribe(frame)
	case models.WSTypeUnsubscribe:
		c.handleUnsubscribe(frame)
	case models.WSTypePing:
		c.reply(models.WSMessage{
			Type:      models.WSTypePong,
			RequestID: frame.RequestID,
			Timestamp: time.Now(),
		})
	default:
		logrus.Debugf("Unknown websocket frame type %q from %s", frame.Type, c.userID)
	}
}

func (c *Client) handleSubscribe(frame models.WSMessage) {
	var req models.SubscribeRequest
	if err := decodeFrameData(frame.Data, &req); err != nil || !isSubscribableRelation(req.Relation) {
		c.reply(models.WSMessage{
			Type:      "error",
			Data:      fmt.Sprintf("invalid subscription: %v", frame.Data),
			RequestID: frame.RequestID,
			Timestamp: time.Now(),
		})
		return
	}

	c.mu.Lock()
	c.subscriptions[req.Relation] = req
	c.mu.Unlock()

	c.reply(models.WSMessage{
		Type:      "subscribed",
		Relation:  req.Relation,
		RequestID: frame.RequestID,
		Timestamp: time.Now(),
	})
}

func (c *Client) handleUnsubscribe(frame models.WSMessage) {
	var req models.SubscribeRequest
	if err := decodeFrameData(frame.Data, &req); err != nil {
		return
	}

	c.mu.Lock()
	delete(c.subscriptions, req.Relation)
	c.mu.Unlock()

	c.reply(models.WSMessage{
		Type:      "unsubscribed",
		Relation:  req.Relation,
		RequestID: frame.RequestID,
		Timestamp: time.Now(),
	})
}

// wantsEvent checks the client's subscription table, applying the
// optional column filter when the event carries a row payload.
func (c *Client) wantsEvent(event models.ChangeEvent) bool {
	c.mu.RLock()
	sub, ok := c.subscriptions[event.Relation]
	c.mu.RUnlock()
	if !ok {
		return false
	}

	if sub.FilterField == "" {
		return true
	}
	return rowFieldMatches(event.Row, sub.FilterField, sub.FilterValue)
}

func (c *Client) reply(frame models.WSMessage) {
	select {
	case c.send <- frame:
	default:
	}
}

func isSubscribableRelation(relation string) bool {
	switch relation {
	case models.RelationEmergencyRequests,
		models.RelationRescueTeams,
		models.RelationRescueMissions,
		models.RelationChatMessages,
		models.RelationDroneStreams:
		return true
	}
	return false
}

// decodeFrameData round-trips the loosely typed frame payload through
// JSON into the target struct.
func decodeFrameData(data interface{}, target interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

// rowFieldMatches evaluates the column equality filter against the
// event row. Rows are compared through their JSON form so that both
// struct and map payloads work.
func rowFieldMatches(row interface{}, field, value string) bool {
	if row == nil {
		return false
	}

	raw, err := json.Marshal(row)
	if err != nil {
		return false
	}

	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return false
	}

	fieldValue, ok := asMap[field]
	if !ok {
		return false
	}

	return fmt.Sprintf("%v", fieldValue) == value
}

package models

import "time"

// WSMessage is the frame exchanged over the realtime feed.
type WSMessage struct {
	Type      string      `json:"type"`
	Relation  string      `json:"relation,omitempty"`
	Action    string      `json:"action,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChangeEvent is an insert/update hint for a named relation. Delivery
// is best-effort with no cross-writer ordering; consumers should treat
// the payload as a cue to re-fetch authoritative state.
type ChangeEvent struct {
	Relation string      `json:"relation"`
	Action   string      `json:"action"` // insert, update, delete
	RowID    string      `json:"rowId"`
	Row      interface{} `json:"row,omitempty"`
}

// Subscribable relations
const (
	RelationEmergencyRequests = "emergency_requests"
	RelationRescueTeams       = "rescue_teams"
	RelationRescueMissions    = "rescue_missions"
	RelationChatMessages      = "chat_messages"
	RelationDroneStreams      = "drone_streams"
)

// Change actions
const (
	ChangeActionInsert = "insert"
	ChangeActionUpdate = "update"
	ChangeActionDelete = "delete"
)

// SubscribeRequest filters a relation feed by an optional column
// equality predicate.
type SubscribeRequest struct {
	Relation    string `json:"relation"`
	FilterField string `json:"filterField,omitempty"`
	FilterValue string `json:"filterValue,omitempty"`
}

// Client -> server frame types
const (
	WSTypeSubscribe   = "subscribe"
	WSTypeUnsubscribe = "unsubscribe"
	WSTypePing        = "ping"
)

// Server -> client frame types
const (
	WSTypeChange = "change"
	WSTypePong   = "pong"
)

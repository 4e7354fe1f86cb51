package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmergencyRequest is a citizen-filed incident. It is never physically
// deleted in normal flow; cancellation is a status.
type EmergencyRequest struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReporterID    primitive.ObjectID `json:"reporterId" bson:"reporterId"`
	EmergencyType string             `json:"emergencyType" bson:"emergencyType"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Latitude      *float64           `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     *float64           `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Priority      string             `json:"priority" bson:"priority"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Priority Constants
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Request Status Constants
const (
	RequestStatusPending    = "pending"
	RequestStatusAssigned   = "assigned"
	RequestStatusInProgress = "in_progress"
	RequestStatusResolved   = "resolved"
	RequestStatusCancelled  = "cancelled"
)

// requestStatusRank orders the forward-only lifecycle. Cancelled sits
// outside the ordering and is reachable from any non-terminal state.
var requestStatusRank = map[string]int{
	RequestStatusPending:    0,
	RequestStatusAssigned:   1,
	RequestStatusInProgress: 2,
	RequestStatusResolved:   3,
}

// CanRequestTransition reports whether a request may move from one
// status to another. Transitions are monotonic forward except for
// explicit cancellation.
func CanRequestTransition(from, to string) bool {
	if from == to {
		return false
	}
	if from == RequestStatusResolved || from == RequestStatusCancelled {
		return false
	}
	if to == RequestStatusCancelled {
		return true
	}
	fromRank, ok := requestStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := requestStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

func (er *EmergencyRequest) HasCoordinates() bool {
	return er.Latitude != nil && er.Longitude != nil
}

func (er *EmergencyRequest) IsTerminal() bool {
	return er.Status == RequestStatusResolved || er.Status == RequestStatusCancelled
}

// =================== REQUEST/RESPONSE MODELS ===================

type CreateEmergencyRequestRequest struct {
	EmergencyType string   `json:"emergencyType" validate:"required,min=2,max=64"`
	Description   string   `json:"description,omitempty" validate:"max=2000"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,coordinate"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,coordinate"`
	Priority      string   `json:"priority" validate:"required,priority"`
}

type UpdateEmergencyRequestRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,priority"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending assigned in_progress resolved cancelled"`
}

type CancelEmergencyRequestRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type EmergencyRequestFilter struct {
	Status   string `json:"status" form:"status"`
	Priority string `json:"priority" form:"priority"`
	Type     string `json:"type" form:"type"`
}

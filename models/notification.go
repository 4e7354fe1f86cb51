package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID     `json:"userId" bson:"userId"`
	Type      string                 `json:"type" bson:"type"`
	Title     string                 `json:"title" bson:"title"`
	Body      string                 `json:"body" bson:"body"`
	Priority  string                 `json:"priority" bson:"priority"`
	Status    string                 `json:"status" bson:"status"`
	Data      map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	SentAt    *time.Time             `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	ReadAt    *time.Time             `json:"readAt,omitempty" bson:"readAt,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
}

// Notification Type Constants
const (
	NotificationTypeRequestCreated  = "request_created"
	NotificationTypeMissionAssigned = "mission_assigned"
	NotificationTypeMissionUpdated  = "mission_updated"
	NotificationTypeRequestResolved = "request_resolved"
	NotificationTypeRoleGranted     = "role_granted"
)

// Notification Status Constants
const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
	NotificationStatusRead    = "read"
)

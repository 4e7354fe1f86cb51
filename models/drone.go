package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DroneStream is stream metadata only; the service never touches the
// video itself.
type DroneStream struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	StreamURL   string             `json:"streamUrl" bson:"streamUrl"`
	Status      string             `json:"status" bson:"status"`
	Latitude    *float64           `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude   *float64           `json:"longitude,omitempty" bson:"longitude,omitempty"`
	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	LastSeenAt  time.Time          `json:"lastSeenAt" bson:"lastSeenAt"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Stream Status Constants
const (
	StreamStatusOnline      = "online"
	StreamStatusOffline     = "offline"
	StreamStatusMaintenance = "maintenance"
)

type RegisterStreamRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description,omitempty" validate:"max=500"`
	StreamURL   string   `json:"streamUrl" validate:"required,url"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,coordinate"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,coordinate"`
}

type UpdateStreamStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online offline maintenance"`
}

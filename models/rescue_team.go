package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RescueTeam is a responder unit. Only the last-known position is
// stored; location updates overwrite in place.
type RescueTeam struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID        primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	TeamName       string             `json:"teamName" bson:"teamName"`
	Specialization string             `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Status         string             `json:"status" bson:"status"`
	Latitude       *float64           `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude      *float64           `json:"longitude,omitempty" bson:"longitude,omitempty"`
	ContactPhone   string             `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	ContactEmail   string             `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Team Status Constants
const (
	TeamStatusAvailable = "available"
	TeamStatusDeployed  = "deployed"
	TeamStatusBusy      = "busy"
	TeamStatusOffDuty   = "off_duty"
)

func IsValidTeamStatus(status string) bool {
	switch status {
	case TeamStatusAvailable, TeamStatusDeployed, TeamStatusBusy, TeamStatusOffDuty:
		return true
	}
	return false
}

// IsEligibleForAssignment reports whether the team can take a new
// mission. Only available teams are eligible.
func (rt *RescueTeam) IsEligibleForAssignment() bool {
	return rt.Status == TeamStatusAvailable
}

func (rt *RescueTeam) HasKnownPosition() bool {
	return rt.Latitude != nil && rt.Longitude != nil
}

// =================== REQUEST/RESPONSE MODELS ===================

type RegisterTeamRequest struct {
	TeamName       string `json:"teamName" validate:"required,min=2,max=100"`
	Specialization string `json:"specialization,omitempty" validate:"max=200"`
	ContactPhone   string `json:"contactPhone,omitempty" validate:"omitempty,phone"`
	ContactEmail   string `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

type UpdateTeamRequest struct {
	TeamName       *string `json:"teamName,omitempty" validate:"omitempty,min=2,max=100"`
	Specialization *string `json:"specialization,omitempty" validate:"omitempty,max=200"`
	ContactPhone   *string `json:"contactPhone,omitempty" validate:"omitempty,phone"`
	ContactEmail   *string `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

type UpdateTeamStatusRequest struct {
	Status string `json:"status" validate:"required,team_status"`
}

type ReportLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"coordinate"`
	Longitude float64 `json:"longitude" validate:"coordinate"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole is a capability row, deliberately separate from the user
// document so grants can be added and revoked without touching the
// identity record.
type UserRole struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Role      string             `json:"role" bson:"role"`
	GrantedBy primitive.ObjectID `json:"grantedBy,omitempty" bson:"grantedBy,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Role Constants
const (
	RoleCitizen    = "citizen"
	RoleRescueTeam = "rescue_team"
	RoleAdmin      = "admin"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleCitizen, RoleRescueTeam, RoleAdmin:
		return true
	}
	return false
}

type GrantRoleRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=citizen rescue_team admin"`
}

type RevokeRoleRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=citizen rescue_team admin"`
}

type HasRoleResponse struct {
	UserID  string `json:"userId"`
	Role    string `json:"role"`
	HasRole bool   `json:"hasRole"`
}

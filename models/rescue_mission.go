package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RescueMission binds one emergency request to one rescue team. A
// request has at most one non-terminal mission at a time, and so does
// a team.
type RescueMission struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EmergencyRequestID primitive.ObjectID `json:"emergencyRequestId" bson:"emergencyRequestId"`
	RescueTeamID       primitive.ObjectID `json:"rescueTeamId" bson:"rescueTeamId"`
	Status             string             `json:"status" bson:"status"`
	Priority           string             `json:"priority" bson:"priority"`
	EstimatedArrival   *time.Time         `json:"estimatedArrival,omitempty" bson:"estimatedArrival,omitempty"`
	ActualArrival      *time.Time         `json:"actualArrival,omitempty" bson:"actualArrival,omitempty"`
	CompletionTime     *time.Time         `json:"completionTime,omitempty" bson:"completionTime,omitempty"`
	Notes              string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Mission Status Constants
const (
	MissionStatusAssigned   = "assigned"
	MissionStatusInProgress = "in_progress"
	MissionStatusCompleted  = "completed"
	MissionStatusCancelled  = "cancelled"
)

var ErrInvalidMissionTransition = errors.New("invalid mission transition")

// missionTransitions holds the allowed lifecycle edges.
var missionTransitions = map[string][]string{
	MissionStatusAssigned:   {MissionStatusInProgress, MissionStatusCancelled},
	MissionStatusInProgress: {MissionStatusCompleted, MissionStatusCancelled},
}

// CanMissionTransition reports whether a mission may move between the
// two statuses. Repeating the current in_progress status is allowed so
// arrival reporting stays idempotent.
func CanMissionTransition(from, to string) bool {
	if from == MissionStatusInProgress && to == MissionStatusInProgress {
		return true
	}
	for _, next := range missionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (rm *RescueMission) IsTerminal() bool {
	return rm.Status == MissionStatusCompleted || rm.Status == MissionStatusCancelled
}

// ApplyTransition moves the mission to the target status and stamps
// the lifecycle timestamps. actual_arrival and completion_time are
// stamp-once: repeat transitions never overwrite an existing value.
func (rm *RescueMission) ApplyTransition(to string, now time.Time) error {
	if !CanMissionTransition(rm.Status, to) {
		return ErrInvalidMissionTransition
	}

	switch to {
	case MissionStatusInProgress:
		if rm.ActualArrival == nil {
			arrival := now
			rm.ActualArrival = &arrival
		}
	case MissionStatusCompleted:
		if rm.CompletionTime == nil {
			completed := now
			rm.CompletionTime = &completed
		}
	}

	rm.Status = to
	rm.UpdatedAt = now
	return nil
}

// RequestStatusForMission maps a mission status to the emergency
// request status that must follow it in lockstep.
func RequestStatusForMission(missionStatus string) (string, bool) {
	switch missionStatus {
	case MissionStatusAssigned:
		return RequestStatusAssigned, true
	case MissionStatusInProgress:
		return RequestStatusInProgress, true
	case MissionStatusCompleted:
		return RequestStatusResolved, true
	}
	return "", false
}

// =================== REQUEST/RESPONSE MODELS ===================

type UpdateMissionStatusRequest struct {
	Status           string     `json:"status" validate:"required,oneof=in_progress completed cancelled"`
	EstimatedArrival *time.Time `json:"estimatedArrival,omitempty"`
}

type UpdateMissionNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=4000"`
}

// AssignmentResult is the outcome of the auto-assign operation. A
// falsy Assigned with no error means no eligible team existed; the
// request stays pending.
type AssignmentResult struct {
	Assigned   bool           `json:"assigned"`
	TeamID     string         `json:"teamId,omitempty"`
	MissionID  string         `json:"missionId,omitempty"`
	DistanceKm *float64       `json:"distanceKm,omitempty"`
	Mission    *RescueMission `json:"mission,omitempty"`
}

type ManualAssignRequest struct {
	RescueTeamID string `json:"rescueTeamId" validate:"required"`
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanMissionTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"assigned to in_progress", MissionStatusAssigned, MissionStatusInProgress, true},
		{"assigned to cancelled", MissionStatusAssigned, MissionStatusCancelled, true},
		{"assigned to completed skips arrival", MissionStatusAssigned, MissionStatusCompleted, false},
		{"in_progress to completed", MissionStatusInProgress, MissionStatusCompleted, true},
		{"in_progress to cancelled", MissionStatusInProgress, MissionStatusCancelled, true},
		{"in_progress repeat is idempotent", MissionStatusInProgress, MissionStatusInProgress, true},
		{"completed is terminal", MissionStatusCompleted, MissionStatusCancelled, false},
		{"cancelled is terminal", MissionStatusCancelled, MissionStatusInProgress, false},
		{"no backwards move", MissionStatusInProgress, MissionStatusAssigned, false},
		{"unknown status", "paused", MissionStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanMissionTransition(tt.from, tt.to))
		})
	}
}

func TestApplyTransitionStampsArrivalOnce(t *testing.T) {
	mission := &RescueMission{Status: MissionStatusAssigned}

	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, mission.ApplyTransition(MissionStatusInProgress, first))
	require.NotNil(t, mission.ActualArrival)
	assert.Equal(t, first, *mission.ActualArrival)

	// A repeated arrival report must not move the timestamp.
	second := first.Add(30 * time.Minute)
	require.NoError(t, mission.ApplyTransition(MissionStatusInProgress, second))
	assert.Equal(t, first, *mission.ActualArrival)
	assert.Equal(t, second, mission.UpdatedAt)
}

func TestApplyTransitionStampsCompletion(t *testing.T) {
	mission := &RescueMission{Status: MissionStatusInProgress}

	done := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, mission.ApplyTransition(MissionStatusCompleted, done))
	require.NotNil(t, mission.CompletionTime)
	assert.Equal(t, done, *mission.CompletionTime)
	assert.True(t, mission.IsTerminal())
}

func TestApplyTransitionRejectsInvalidMove(t *testing.T) {
	mission := &RescueMission{Status: MissionStatusCompleted}

	err := mission.ApplyTransition(MissionStatusInProgress, time.Now())
	assert.ErrorIs(t, err, ErrInvalidMissionTransition)
	assert.Equal(t, MissionStatusCompleted, mission.Status)
}

func TestRequestStatusForMission(t *testing.T) {
	status, ok := RequestStatusForMission(MissionStatusAssigned)
	require.True(t, ok)
	assert.Equal(t, RequestStatusAssigned, status)

	status, ok = RequestStatusForMission(MissionStatusInProgress)
	require.True(t, ok)
	assert.Equal(t, RequestStatusInProgress, status)

	status, ok = RequestStatusForMission(MissionStatusCompleted)
	require.True(t, ok)
	assert.Equal(t, RequestStatusResolved, status)

	// Cancellation re-opens the request instead of following it, so the
	// mapping does not cover it.
	_, ok = RequestStatusForMission(MissionStatusCancelled)
	assert.False(t, ok)
}

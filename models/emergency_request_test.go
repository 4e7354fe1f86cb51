package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRequestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to assigned", RequestStatusPending, RequestStatusAssigned, true},
		{"assigned to in_progress", RequestStatusAssigned, RequestStatusInProgress, true},
		{"in_progress to resolved", RequestStatusInProgress, RequestStatusResolved, true},
		{"pending straight to resolved", RequestStatusPending, RequestStatusResolved, true},
		{"no backwards move", RequestStatusAssigned, RequestStatusPending, false},
		{"no self transition", RequestStatusPending, RequestStatusPending, false},
		{"pending can cancel", RequestStatusPending, RequestStatusCancelled, true},
		{"in_progress can cancel", RequestStatusInProgress, RequestStatusCancelled, true},
		{"resolved is terminal", RequestStatusResolved, RequestStatusCancelled, false},
		{"cancelled is terminal", RequestStatusCancelled, RequestStatusPending, false},
		{"unknown source", "archived", RequestStatusResolved, false},
		{"unknown target", RequestStatusPending, "archived", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanRequestTransition(tt.from, tt.to))
		})
	}
}

func TestHasCoordinates(t *testing.T) {
	lat, lon := 17.385, 78.4867

	assert.False(t, (&EmergencyRequest{}).HasCoordinates())
	assert.False(t, (&EmergencyRequest{Latitude: &lat}).HasCoordinates())
	assert.True(t, (&EmergencyRequest{Latitude: &lat, Longitude: &lon}).HasCoordinates())
}

func TestRequestIsTerminal(t *testing.T) {
	assert.True(t, (&EmergencyRequest{Status: RequestStatusResolved}).IsTerminal())
	assert.True(t, (&EmergencyRequest{Status: RequestStatusCancelled}).IsTerminal())
	assert.False(t, (&EmergencyRequest{Status: RequestStatusInProgress}).IsTerminal())
}

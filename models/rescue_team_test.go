package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEligibleForAssignment(t *testing.T) {
	assert.True(t, (&RescueTeam{Status: TeamStatusAvailable}).IsEligibleForAssignment())
	assert.False(t, (&RescueTeam{Status: TeamStatusDeployed}).IsEligibleForAssignment())
	assert.False(t, (&RescueTeam{Status: TeamStatusBusy}).IsEligibleForAssignment())
	assert.False(t, (&RescueTeam{Status: TeamStatusOffDuty}).IsEligibleForAssignment())
}

func TestIsValidTeamStatus(t *testing.T) {
	for _, status := range []string{TeamStatusAvailable, TeamStatusDeployed, TeamStatusBusy, TeamStatusOffDuty} {
		assert.True(t, IsValidTeamStatus(status), status)
	}
	assert.False(t, IsValidTeamStatus("resting"))
	assert.False(t, IsValidTeamStatus(""))
}

func TestHasKnownPosition(t *testing.T) {
	lat, lon := 17.4, 78.5

	assert.False(t, (&RescueTeam{}).HasKnownPosition())
	assert.False(t, (&RescueTeam{Longitude: &lon}).HasKnownPosition())
	assert.True(t, (&RescueTeam{Latitude: &lat, Longitude: &lon}).HasKnownPosition())
}

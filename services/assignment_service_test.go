package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkatesh1545/drone-x-alert-now/models"
)

func coord(v float64) *float64 { return &v }

func availableTeam(name string, lat, lon *float64, createdAt time.Time) models.RescueTeam {
	return models.RescueTeam{
		ID:        primitive.NewObjectID(),
		TeamName:  name,
		Status:    models.TeamStatusAvailable,
		Latitude:  lat,
		Longitude: lon,
		CreatedAt: createdAt,
	}
}

func TestRankTeamsNearestFirst(t *testing.T) {
	request := &models.EmergencyRequest{
		Latitude:  coord(17.3850),
		Longitude: coord(78.4867),
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	far := availableTeam("far", coord(19.0760), coord(72.8777), base)
	near := availableTeam("near", coord(17.4000), coord(78.5000), base.Add(time.Hour))
	mid := availableTeam("mid", coord(17.9000), coord(79.6000), base.Add(2*time.Hour))

	ranked := RankTeams(request, []models.RescueTeam{far, near, mid})

	require.Len(t, ranked, 3)
	assert.Equal(t, "near", ranked[0].Team.TeamName)
	assert.Equal(t, "mid", ranked[1].Team.TeamName)
	assert.Equal(t, "far", ranked[2].Team.TeamName)

	require.NotNil(t, ranked[0].DistanceKm)
	require.NotNil(t, ranked[2].DistanceKm)
	assert.Less(t, *ranked[0].DistanceKm, *ranked[2].DistanceKm)
}

func TestRankTeamsUnknownPositionsLast(t *testing.T) {
	request := &models.EmergencyRequest{
		Latitude:  coord(17.3850),
		Longitude: coord(78.4867),
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	blindOld := availableTeam("blind-old", nil, nil, base)
	located := availableTeam("located", coord(17.5), coord(78.6), base.Add(time.Hour))
	blindNew := availableTeam("blind-new", nil, nil, base.Add(2*time.Hour))

	ranked := RankTeams(request, []models.RescueTeam{blindOld, located, blindNew})

	require.Len(t, ranked, 3)
	assert.Equal(t, "located", ranked[0].Team.TeamName)
	// Teams without a position keep their registration order behind the
	// located ones.
	assert.Equal(t, "blind-old", ranked[1].Team.TeamName)
	assert.Equal(t, "blind-new", ranked[2].Team.TeamName)
	assert.Nil(t, ranked[1].DistanceKm)
}

func TestRankTeamsWithoutRequestCoordinates(t *testing.T) {
	request := &models.EmergencyRequest{}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := availableTeam("first", coord(17.5), coord(78.6), base)
	second := availableTeam("second", coord(17.4), coord(78.5), base.Add(time.Hour))

	ranked := RankTeams(request, []models.RescueTeam{first, second})

	// No incident position means no distance ranking; registration
	// order stands and no distances are computed.
	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].Team.TeamName)
	assert.Equal(t, "second", ranked[1].Team.TeamName)
	assert.Nil(t, ranked[0].DistanceKm)
}

func TestRankTeamsFiltersIneligible(t *testing.T) {
	request := &models.EmergencyRequest{}

	deployed := availableTeam("deployed", nil, nil, time.Now())
	deployed.Status = models.TeamStatusDeployed
	offDuty := availableTeam("off-duty", nil, nil, time.Now())
	offDuty.Status = models.TeamStatusOffDuty
	ready := availableTeam("ready", nil, nil, time.Now())

	ranked := RankTeams(request, []models.RescueTeam{deployed, offDuty, ready})

	require.Len(t, ranked, 1)
	assert.Equal(t, "ready", ranked[0].Team.TeamName)
}

func TestRankTeamsEmpty(t *testing.T) {
	ranked := RankTeams(&models.EmergencyRequest{}, nil)
	assert.Empty(t, ranked)
}

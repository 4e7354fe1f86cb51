package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkatesh1545/drone-x-alert-now/models"
)

func newTestClient() *Client {
	return NewClient(NewHub(), nil, "user-1")
}

func TestWantsEventRequiresSubscription(t *testing.T) {
	client := newTestClient()

	event := models.ChangeEvent{Relation: models.RelationEmergencyRequests}
	assert.False(t, client.wantsEvent(event))

	client.subscriptions[models.RelationEmergencyRequests] = models.SubscribeRequest{
		Relation: models.RelationEmergencyRequests,
	}
	assert.True(t, client.wantsEvent(event))

	// Other relations stay silent.
	assert.False(t, client.wantsEvent(models.ChangeEvent{Relation: models.RelationRescueTeams}))
}

func TestWantsEventAppliesColumnFilter(t *testing.T) {
	client := newTestClient()
	client.subscriptions[models.RelationRescueMissions] = models.SubscribeRequest{
		Relation:    models.RelationRescueMissions,
		FilterField: "status",
		FilterValue: models.MissionStatusAssigned,
	}

	assigned := models.ChangeEvent{
		Relation: models.RelationRescueMissions,
		Row:      &models.RescueMission{Status: models.MissionStatusAssigned},
	}
	completed := models.ChangeEvent{
		Relation: models.RelationRescueMissions,
		Row:      &models.RescueMission{Status: models.MissionStatusCompleted},
	}

	assert.True(t, client.wantsEvent(assigned))
	assert.False(t, client.wantsEvent(completed))
}

func TestRowFieldMatches(t *testing.T) {
	teamID := primitive.NewObjectID()
	mission := &models.RescueMission{RescueTeamID: teamID}

	assert.True(t, rowFieldMatches(mission, "rescueTeamId", teamID.Hex()))
	assert.False(t, rowFieldMatches(mission, "rescueTeamId", primitive.NewObjectID().Hex()))
	assert.False(t, rowFieldMatches(mission, "noSuchField", "x"))
	assert.False(t, rowFieldMatches(nil, "status", "assigned"))

	// Map payloads work the same as structs.
	assert.True(t, rowFieldMatches(map[string]interface{}{"status": "online"}, "status", "online"))
}

func TestIsSubscribableRelation(t *testing.T) {
	for _, relation := range []string{
		models.RelationEmergencyRequests,
		models.RelationRescueTeams,
		models.RelationRescueMissions,
		models.RelationChatMessages,
		models.RelationDroneStreams,
	} {
		assert.True(t, isSubscribableRelation(relation), relation)
	}
	assert.False(t, isSubscribableRelation("users"))
	assert.False(t, isSubscribableRelation(""))
}

func TestDecodeFrameData(t *testing.T) {
	var req models.SubscribeRequest
	err := decodeFrameData(map[string]interface{}{
		"relation":    models.RelationDroneStreams,
		"filterField": "status",
		"filterValue": "online",
	}, &req)

	require.NoError(t, err)
	assert.Equal(t, models.RelationDroneStreams, req.Relation)
	assert.Equal(t, "status", req.FilterField)
	assert.Equal(t, "online", req.FilterValue)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type teamStatusPayload struct {
	Status string `validate:"required,team_status"`
}

type coordinatePayload struct {
	Latitude  float64 `validate:"coordinate"`
	Longitude float64 `validate:"coordinate"`
}

type phonePayload struct {
	Phone string `validate:"phone"`
}

type priorityPayload struct {
	Priority string `validate:"required,priority"`
}

func TestValidateTeamStatusTag(t *testing.T) {
	vs := NewValidationService()

	assert.Empty(t, vs.ValidateStruct(teamStatusPayload{Status: "available"}))
	assert.Empty(t, vs.ValidateStruct(teamStatusPayload{Status: "off_duty"}))

	errs := vs.ValidateStruct(teamStatusPayload{Status: "resting"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid team status", errs[0].Message)
}

func TestValidateCoordinateTag(t *testing.T) {
	vs := NewValidationService()

	assert.Empty(t, vs.ValidateStruct(coordinatePayload{Latitude: 17.385, Longitude: 78.4867}))
	assert.Empty(t, vs.ValidateStruct(coordinatePayload{Latitude: -90, Longitude: 180}))

	errs := vs.ValidateStruct(coordinatePayload{Latitude: 91, Longitude: 0})
	require.Len(t, errs, 1)
	assert.Equal(t, "Latitude", errs[0].Field)

	errs = vs.ValidateStruct(coordinatePayload{Latitude: 0, Longitude: -181})
	require.Len(t, errs, 1)
	assert.Equal(t, "Longitude", errs[0].Field)
}

func TestValidatePhoneTag(t *testing.T) {
	vs := NewValidationService()

	assert.Empty(t, vs.ValidateStruct(phonePayload{Phone: "+919876543210"}))
	assert.NotEmpty(t, vs.ValidateStruct(phonePayload{Phone: "12"}))
	assert.NotEmpty(t, vs.ValidateStruct(phonePayload{Phone: "not-a-number"}))
}

func TestValidatePriorityTag(t *testing.T) {
	vs := NewValidationService()

	for _, priority := range []string{"low", "medium", "high", "critical"} {
		assert.Empty(t, vs.ValidateStruct(priorityPayload{Priority: priority}), priority)
	}

	errs := vs.ValidateStruct(priorityPayload{Priority: "urgent"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid priority", errs[0].Message)
}

func TestValidateStructRequiredMessage(t *testing.T) {
	vs := NewValidationService()

	errs := vs.ValidateStruct(teamStatusPayload{})
	require.Len(t, errs, 1)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Contains(t, errs[0].Message, "required")
}

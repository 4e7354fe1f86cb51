package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDistance(t *testing.T) {
	// Hyderabad to Mumbai, roughly 620 km great-circle.
	distance := CalculateDistanceKm(17.3850, 78.4867, 19.0760, 72.8777)
	assert.InDelta(t, 620, distance, 15)
}

func TestCalculateDistanceZero(t *testing.T) {
	assert.Zero(t, CalculateDistance(17.3850, 78.4867, 17.3850, 78.4867))
}

func TestCalculateDistanceSymmetry(t *testing.T) {
	forward := CalculateDistance(12.9716, 77.5946, 28.6139, 77.2090)
	reverse := CalculateDistance(28.6139, 77.2090, 12.9716, 77.5946)
	assert.InDelta(t, forward, reverse, 0.001)
}

func TestIsValidCoordinate(t *testing.T) {
	assert.True(t, IsValidCoordinate(0, 0))
	assert.True(t, IsValidCoordinate(-90, -180))
	assert.True(t, IsValidCoordinate(90, 180))
	assert.False(t, IsValidCoordinate(90.1, 0))
	assert.False(t, IsValidCoordinate(-90.1, 0))
	assert.False(t, IsValidCoordinate(0, 180.1))
	assert.False(t, IsValidCoordinate(0, -180.1))
}

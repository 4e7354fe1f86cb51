package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/venkatesh1545/drone-x-alert-now/repositories"
)

func TestDeliveryAction(t *testing.T) {
	tests := []struct {
		name        string
		lookupErr   error
		senderReady bool
		deviceToken string
		want        int
	}{
		{"pushes with token and sender", nil, true, "fcm-token", deliveryPush},
		{"skips without device token", nil, true, "", deliverySkip},
		{"skips without sender", nil, false, "fcm-token", deliverySkip},
		{"skips deleted recipient", repositories.ErrNotFound, true, "", deliverySkip},
		{"skips malformed recipient id", repositories.ErrInvalidID, true, "", deliverySkip},
		{"retries transient lookup failure", errors.New("connection reset"), true, "", deliveryRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deliveryAction(tt.lookupErr, tt.senderReady, tt.deviceToken))
		})
	}
}

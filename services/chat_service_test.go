package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondToMessageKeywords(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"flood keyword", "our street is flooding fast", "higher ground"},
		{"fire keyword", "There is SMOKE coming from the kitchen", "Evacuate"},
		{"earthquake keyword", "just felt a huge tremor", "Drop, cover"},
		{"storm keyword", "a cyclone is heading our way", "Stay indoors"},
		{"medical keyword", "my brother is bleeding badly", "direct pressure"},
		{"trapped keyword", "we are stuck under a collapsed wall", "conserve energy"},
		{"generic help", "please help us", "file an emergency request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, RespondToMessage(tt.message), tt.want)
		})
	}
}

func TestRespondToMessageIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, RespondToMessage("FIRE in the warehouse"), RespondToMessage("fire in the warehouse"))
}

func TestRespondToMessageFallback(t *testing.T) {
	reply := RespondToMessage("what's the weather like")
	assert.Equal(t, guidanceFallback, reply)
}

func TestRespondToMessageFirstMatchWins(t *testing.T) {
	// "flood" appears before the generic "help" entry; a message with
	// both must get the flood guidance.
	reply := RespondToMessage("help, flood water is rising")
	assert.Contains(t, reply, "higher ground")
}

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

func TestMatchMenu(t *testing.T) {
	tests := []struct {
		input  string
		want   model.State
		wantOK bool
	}{
		{"1", model.StatePricingSelect, true},
		{"how much does it cost?", model.StatePricingSelect, true},
		{"Pricing please!", model.StatePricingSelect, true},
		{"2", model.StateAgentsSelect, true},
		{"what can your agents do", model.StateAgentsSelect, true},
		{"3", model.StateSupportIssue, true},
		{"i have a problem", model.StateSupportIssue, true},
		{"4", model.StateBookStart, true},
		{"book a demo", model.StateBookStart, true},

		{"", model.StateNone, false},
		{"tell me a joke", model.StateNone, false},
		{"5", model.StateNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchMenu(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchMenuFirstOptionWins(t *testing.T) {
	// "cost" (pricing) and "agents" both present; pricing is declared first.
	got, ok := MatchMenu("what do your agents cost")
	assert.True(t, ok)
	assert.Equal(t, model.StatePricingSelect, got)
}

func TestMatchesBookingIntent(t *testing.T) {
	for _, input := range []string{"book", "I want a DEMO", "can we schedule something", "give me a call", "let's do a meeting", "4"} {
		assert.True(t, MatchesBookingIntent(input), input)
	}
	for _, input := range []string{"", "booking agent price", "what about demos later", "tell me more"} {
		assert.False(t, MatchesBookingIntent(input), input)
	}
}

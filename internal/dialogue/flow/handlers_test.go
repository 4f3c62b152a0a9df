package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

func dispatchOutcome(t *testing.T, state model.State, input string) Outcome {
	t.Helper()
	h, ok := HandlerFor(state)
	require.True(t, ok, "state %s must have a handler", state)
	return h(nil, input)
}

func TestEveryKnownStateHasAHandler(t *testing.T) {
	for _, s := range []model.State{
		model.StateWelcome, model.StateMenu,
		model.StatePricingSelect, model.StatePricingDetail,
		model.StateAgentsSelect, model.StateAgentsDetail,
		model.StateSupportIssue, model.StateSupportEscal,
		model.StateBookStart, model.StateBookName, model.StateBookEmail,
		model.StateBookPhone, model.StateBookCompany, model.StateBookEmployees,
		model.StateBookChannel, model.StateBookGoal, model.StateBookSendLink,
		model.StateBookAwait, model.StateBookConfirmed, model.StateDone,
	} {
		_, ok := HandlerFor(s)
		assert.True(t, ok, "missing handler for %s", s)
	}
}

func TestHandleWelcomeAlwaysShowsMenu(t *testing.T) {
	out := dispatchOutcome(t, model.StateWelcome, "whatever the user says first")
	assert.Equal(t, model.StateMenu, out.Next)
	assert.Equal(t, Prompt(model.StateMenu), out.Reply)
}

func TestHandleMenuNoMatchStaysPut(t *testing.T) {
	out := dispatchOutcome(t, model.StateMenu, "sing me a song")
	assert.Equal(t, model.StateNone, out.Next)
	assert.Empty(t, out.Reply, "the orchestrator supplies the short re-prompt")
}

func TestHandleMenuMatchEntersTarget(t *testing.T) {
	out := dispatchOutcome(t, model.StateMenu, "2")
	assert.Equal(t, model.StateAgentsSelect, out.Next)
	assert.Equal(t, Prompt(model.StateAgentsSelect), out.Reply)
}

func TestPricingSelect(t *testing.T) {
	out := dispatchOutcome(t, model.StatePricingSelect, "the growth one")
	assert.Equal(t, model.StatePricingDetail, out.Next)
	assert.Equal(t, "growth", out.Patch[FieldPlan])
	assert.Contains(t, out.Reply, "€2,400")
	assert.Contains(t, out.Reply, "€550/month")

	// Unrecognized plan question is deferred to retrieval, not an error.
	out = dispatchOutcome(t, model.StatePricingSelect, "do you have a free tier?")
	assert.True(t, out.Defer)
}

func TestAgentsSelect(t *testing.T) {
	out := dispatchOutcome(t, model.StateAgentsSelect, "the booking agent")
	assert.Equal(t, model.StateAgentsDetail, out.Next)
	assert.Equal(t, "booking", out.Patch[FieldAgent])
	assert.Contains(t, out.Reply, "€300/month")
}

func TestDetailStates(t *testing.T) {
	out := dispatchOutcome(t, model.StatePricingDetail, "back")
	assert.Equal(t, model.StateMenu, out.Next)

	out = dispatchOutcome(t, model.StateAgentsDetail, "can it speak German?")
	assert.True(t, out.Defer)
}

func TestSupportIssue(t *testing.T) {
	out := dispatchOutcome(t, model.StateSupportIssue, "the widget stopped loading yesterday")
	assert.Equal(t, model.StateSupportEscal, out.Next)
	assert.Equal(t, "the widget stopped loading yesterday", out.Patch[FieldSupportIssue])
	assert.Equal(t, EventSupportEscalated, out.Event)

	out = dispatchOutcome(t, model.StateSupportIssue, "   ")
	assert.Equal(t, model.StateNone, out.Next)
	assert.Empty(t, out.Event)
}

func TestBookingFieldOutcome(t *testing.T) {
	out := BookingFieldOutcome(model.StateBookName, "Ada Lovelace")
	assert.Equal(t, model.StateBookEmail, out.Next)
	assert.Equal(t, "Ada Lovelace", out.Patch[FieldName])
	assert.Equal(t, Prompt(model.StateBookEmail), out.Reply)

	out = BookingFieldOutcome(model.StateBookEmail, "not-an-email")
	assert.Equal(t, model.StateNone, out.Next, "invalid input keeps the state")
	assert.NotEmpty(t, out.Reply)
	assert.Empty(t, out.Patch)

	// Last collected field hands off to the link-sending action state.
	out = BookingFieldOutcome(model.StateBookGoal, "answer WhatsApp leads at night")
	assert.Equal(t, model.StateBookSendLink, out.Next)
	assert.Equal(t, "answer WhatsApp leads at night", out.Patch[FieldGoal])
}

func TestBookingChainCoversAllFields(t *testing.T) {
	// Walk the whole chain from BOOK_NAME and check it terminates at SEND_LINK.
	inputs := map[model.State]string{
		model.StateBookName:      "Ada",
		model.StateBookEmail:     "ada@example.com",
		model.StateBookPhone:     "+34 600 123 456",
		model.StateBookCompany:   "Analytical Engines",
		model.StateBookEmployees: "40",
		model.StateBookChannel:   "whatsapp",
		model.StateBookGoal:      "qualify leads",
	}

	state := model.StateBookName
	seen := map[model.State]bool{}
	for IsBookingField(state) {
		require.False(t, seen[state], "booking chain must not loop")
		seen[state] = true
		out := BookingFieldOutcome(state, inputs[state])
		require.NotEqual(t, model.StateNone, out.Next)
		state = out.Next
	}
	assert.Equal(t, model.StateBookSendLink, state)
	assert.Len(t, seen, len(inputs))
}

func TestDoneDefersToRetrieval(t *testing.T) {
	out := dispatchOutcome(t, model.StateDone, "what about data retention?")
	assert.True(t, out.Defer)
}

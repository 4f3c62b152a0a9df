package flow

import (
	"strings"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

// Outcome is the side-effect-free result of dispatching one input against
// the current state. Next == StateNone means "stay put and re-prompt";
// Defer means the turn is delegated to retrieval + language model.
type Outcome struct {
	Reply string
	Next  model.State
	Patch map[string]string
	Defer bool
	Event string
}

// Handler computes the outcome for one user input in a given state.
// Handlers never mutate the session; the orchestrator applies the outcome
// through the machine.
type Handler func(sess *model.SessionState, input string) Outcome

// bookingFields declares the scripted booking chain: the field each state
// collects and the state that follows.
var bookingFields = map[model.State]struct {
	field string
	next  model.State
}{
	model.StateBookName:      {FieldName, model.StateBookEmail},
	model.StateBookEmail:     {FieldEmail, model.StateBookPhone},
	model.StateBookPhone:     {FieldPhone, model.StateBookCompany},
	model.StateBookCompany:   {FieldCompany, model.StateBookEmployees},
	model.StateBookEmployees: {FieldEmployees, model.StateBookChannel},
	model.StateBookChannel:   {FieldChannel, model.StateBookGoal},
	model.StateBookGoal:      {FieldGoal, model.StateBookSendLink},
}

var handlers map[model.State]Handler

func init() {
	handlers = map[model.State]Handler{
		model.StateWelcome: handleWelcome,
		model.StateMenu:    handleMenu,

		model.StatePricingSelect: handlePricingSelect,
		model.StatePricingDetail: handleDetail,
		model.StateAgentsSelect:  handleAgentsSelect,
		model.StateAgentsDetail:  handleDetail,
		model.StateSupportIssue:  handleSupportIssue,
		model.StateSupportEscal:  handleBackToMenu,

		model.StateBookStart:     handleBookStart,
		model.StateBookSendLink:  handleSendLink,
		model.StateBookAwait:     handleAwait,
		model.StateBookConfirmed: handleConfirmedFollowup,
		model.StateDone:          handleDone,
	}
	for state := range bookingFields {
		s := state
		handlers[s] = func(_ *model.SessionState, input string) Outcome {
			return BookingFieldOutcome(s, input)
		}
	}
}

// HandlerFor returns the handler registered for a state.
func HandlerFor(state model.State) (Handler, bool) {
	h, ok := handlers[state]
	return h, ok
}

func handleWelcome(_ *model.SessionState, _ string) Outcome {
	return Outcome{Reply: Prompt(model.StateMenu), Next: model.StateMenu}
}

func handleMenu(_ *model.SessionState, input string) Outcome {
	target, ok := MatchMenu(input)
	if !ok {
		// Null next-state: the orchestrator issues the short re-prompt.
		return Outcome{Next: model.StateNone}
	}
	return Outcome{Reply: Prompt(target), Next: target}
}

func handlePricingSelect(_ *model.SessionState, input string) Outcome {
	key, ok := matchChoice(input, planAliases)
	if !ok {
		// Unknown plan question: let retrieval answer it.
		return Outcome{Defer: true}
	}
	return Outcome{
		Reply: planSummaries[key],
		Next:  model.StatePricingDetail,
		Patch: map[string]string{FieldPlan: key},
	}
}

func handleAgentsSelect(_ *model.SessionState, input string) Outcome {
	key, ok := matchChoice(input, agentAliases)
	if !ok {
		return Outcome{Defer: true}
	}
	return Outcome{
		Reply: agentSummaries[key],
		Next:  model.StateAgentsDetail,
		Patch: map[string]string{FieldAgent: key},
	}
}

// handleDetail serves PRICING_DETAIL and AGENTS_DETAIL: "menu"/"back"
// returns to the menu, anything else is an open question for retrieval.
func handleDetail(_ *model.SessionState, input string) Outcome {
	for _, w := range normalizeInput(input) {
		if w == "menu" || w == "back" {
			return Outcome{Reply: MenuReprompt(), Next: model.StateMenu}
		}
	}
	return Outcome{Defer: true}
}

func handleSupportIssue(_ *model.SessionState, input string) Outcome {
	issue := strings.TrimSpace(input)
	if issue == "" {
		return Outcome{Next: model.StateNone}
	}
	return Outcome{
		Reply: "Thanks, I've logged that for the team - someone will get back to you shortly. Anything else? You can reply 1 (pricing), 2 (agents) or 4 (book a demo).",
		Next:  model.StateSupportEscal,
		Patch: map[string]string{FieldSupportIssue: issue},
		Event: EventSupportEscalated,
	}
}

func handleBackToMenu(_ *model.SessionState, _ string) Outcome {
	return Outcome{Reply: MenuReprompt(), Next: model.StateMenu}
}

// handleBookStart is an action state: the orchestrator chains it straight
// into BOOK_NAME, so this handler only runs if a turn lands here directly.
func handleBookStart(_ *model.SessionState, _ string) Outcome {
	return Outcome{Reply: Prompt(model.StateBookName), Next: model.StateBookName}
}

// BookingFieldOutcome dispatches a booking-field state explicitly: invalid
// input keeps the state and returns the validator's message, valid input
// records the field and advances the chain.
func BookingFieldOutcome(state model.State, input string) Outcome {
	step, ok := bookingFields[state]
	if !ok {
		return Outcome{Next: model.StateNone}
	}

	valid, msg := ValidateInput(state, input)
	if !valid {
		return Outcome{Reply: msg, Next: model.StateNone}
	}

	return Outcome{
		Reply: Prompt(step.next),
		Next:  step.next,
		Patch: map[string]string{step.field: strings.TrimSpace(input)},
	}
}

func handleSendLink(_ *model.SessionState, _ string) Outcome {
	return Outcome{Reply: AwaitingConfirmation(), Next: model.StateBookAwait}
}

func handleAwait(_ *model.SessionState, _ string) Outcome {
	// The orchestrator consults the confirmation record before this handler
	// ever runs; reaching it means no complete record exists yet.
	return Outcome{Reply: AwaitingConfirmation(), Next: model.StateNone}
}

func handleConfirmedFollowup(_ *model.SessionState, _ string) Outcome {
	return Outcome{Reply: Prompt(model.StateDone), Next: model.StateDone}
}

func handleDone(_ *model.SessionState, _ string) Outcome {
	return Outcome{Defer: true}
}

// IsBookingField reports whether state collects a booking field.
func IsBookingField(state model.State) bool {
	_, ok := bookingFields[state]
	return ok
}

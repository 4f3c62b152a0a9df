package model

// State is a named point in the scripted conversation flow.
type State string

const (
	StateWelcome State = "WELCOME"
	StateMenu    State = "MENU"

	StatePricingSelect State = "PRICING_SELECT"
	StatePricingDetail State = "PRICING_DETAIL"
	StateAgentsSelect  State = "AGENTS_SELECT"
	StateAgentsDetail  State = "AGENTS_DETAIL"
	StateSupportIssue  State = "SUPPORT_ISSUE"
	StateSupportEscal  State = "SUPPORT_ESCALATE"

	StateBookStart     State = "BOOK_START"
	StateBookName      State = "BOOK_NAME"
	StateBookEmail     State = "BOOK_EMAIL"
	StateBookPhone     State = "BOOK_PHONE"
	StateBookCompany   State = "BOOK_COMPANY"
	StateBookEmployees State = "BOOK_EMPLOYEES"
	StateBookChannel   State = "BOOK_CHANNEL"
	StateBookGoal      State = "BOOK_GOAL"
	StateBookSendLink  State = "BOOK_SEND_LINK"
	StateBookAwait     State = "BOOK_AWAIT_CONFIRMATION"
	StateBookConfirmed State = "BOOK_CONFIRMED"

	StateDone State = "DONE"

	// StateNone signals "no next state" (e.g. unmatched menu input). The
	// orchestrator turns it into a short re-prompt in the current state.
	StateNone State = ""
)

var knownStates = map[State]bool{
	StateWelcome:       true,
	StateMenu:          true,
	StatePricingSelect: true,
	StatePricingDetail: true,
	StateAgentsSelect:  true,
	StateAgentsDetail:  true,
	StateSupportIssue:  true,
	StateSupportEscal:  true,
	StateBookStart:     true,
	StateBookName:      true,
	StateBookEmail:     true,
	StateBookPhone:     true,
	StateBookCompany:   true,
	StateBookEmployees: true,
	StateBookChannel:   true,
	StateBookGoal:      true,
	StateBookSendLink:  true,
	StateBookAwait:     true,
	StateBookConfirmed: true,
	StateDone:          true,
}

var bookingStates = map[State]bool{
	StateBookStart:     true,
	StateBookName:      true,
	StateBookEmail:     true,
	StateBookPhone:     true,
	StateBookCompany:   true,
	StateBookEmployees: true,
	StateBookChannel:   true,
	StateBookGoal:      true,
	StateBookSendLink:  true,
	StateBookAwait:     true,
	StateBookConfirmed: true,
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Known reports whether s is a member of the declared state enum.
// An unknown value in a loaded session is treated as corruption.
func (s State) Known() bool {
	return knownStates[s]
}

// IsBooking reports whether s belongs to the scripted booking flow.
// The direct-intent override is disabled inside booking states.
func (s State) IsBooking() bool {
	return bookingStates[s]
}

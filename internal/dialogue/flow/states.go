// Package flow implements the deterministic conversation state machine:
// the declared state adjacency, per-state input validation, menu
// disambiguation and the per-state handler table.
package flow

import (
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

// adjacency declares the expected next states per state. Transitions absent
// from this table are logged and counted, never rejected; declared overrides
// (direct booking intent) are first-class, not violations.
var adjacency = map[model.State][]model.State{
	model.StateWelcome: {model.StateMenu},
	model.StateMenu: {
		model.StatePricingSelect,
		model.StateAgentsSelect,
		model.StateSupportIssue,
		model.StateBookStart,
	},
	model.StatePricingSelect: {model.StatePricingDetail, model.StateMenu},
	model.StatePricingDetail: {model.StateMenu},
	model.StateAgentsSelect:  {model.StateAgentsDetail, model.StateMenu},
	model.StateAgentsDetail:  {model.StateMenu},
	model.StateSupportIssue:  {model.StateSupportEscal},
	model.StateSupportEscal:  {model.StateMenu},
	model.StateBookStart:     {model.StateBookName},
	model.StateBookName:      {model.StateBookEmail},
	model.StateBookEmail:     {model.StateBookPhone},
	model.StateBookPhone:     {model.StateBookCompany},
	model.StateBookCompany:   {model.StateBookEmployees},
	model.StateBookEmployees: {model.StateBookChannel},
	model.StateBookChannel:   {model.StateBookGoal},
	model.StateBookGoal:      {model.StateBookSendLink},
	model.StateBookSendLink:  {model.StateBookAwait},
	model.StateBookAwait:     {model.StateBookConfirmed},
	model.StateBookConfirmed: {model.StateDone},
	model.StateDone:          {},
}

// Allowed reports whether from → to appears in the declared adjacency table.
func Allowed(from, to model.State) bool {
	for _, next := range adjacency[from] {
		if next == to {
			return true
		}
	}
	return false
}

// declaredOverride reports whether from → to is an explicitly declared flow
// override rather than an adjacency violation. Jumping into BOOK_NAME from
// any non-booking state is the direct-booking escape hatch.
func declaredOverride(from, to model.State) bool {
	return to == model.StateBookName && !from.IsBooking()
}

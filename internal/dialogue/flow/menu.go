package flow

import (
	"strings"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

// menuOption maps a menu entry to its target state, numeric shortcut and
// keyword set. Order matters: first match wins.
type menuOption struct {
	target   model.State
	shortcut string
	keywords []string
}

var menuOptions = []menuOption{
	{model.StatePricingSelect, "1", []string{"pricing", "price", "prices", "cost", "plan", "plans"}},
	{model.StateAgentsSelect, "2", []string{"agent", "agents", "bot", "bots", "assistant", "assistants"}},
	{model.StateSupportIssue, "3", []string{"support", "help", "issue", "problem", "broken"}},
	{model.StateBookStart, "4", []string{"book", "demo", "call", "schedule", "meeting"}},
}

// bookingIntentWords drive the direct-intent override from any non-booking
// state straight into BOOK_NAME.
var bookingIntentWords = []string{"book", "demo", "call", "schedule", "meeting"}

// normalizeInput lowercases and strips non-alphanumerics so free text can be
// matched against keyword sets.
func normalizeInput(raw string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// MatchMenu resolves free-text menu input to a target state. It returns
// (StateNone, false) when nothing matches; the orchestrator then issues a
// short re-prompt that does not repeat the full menu.
func MatchMenu(raw string) (model.State, bool) {
	words := normalizeInput(raw)
	if len(words) == 0 {
		return model.StateNone, false
	}

	for _, opt := range menuOptions {
		if matchesOption(words, opt) {
			return opt.target, true
		}
	}
	return model.StateNone, false
}

func matchesOption(words []string, opt menuOption) bool {
	for _, w := range words {
		if w == opt.shortcut {
			return true
		}
		for _, kw := range opt.keywords {
			if w == kw {
				return true
			}
		}
	}
	return false
}

// MatchesBookingIntent reports whether raw input triggers the direct-booking
// override (booking keyword or the booking menu shortcut).
func MatchesBookingIntent(raw string) bool {
	for _, w := range normalizeInput(raw) {
		if w == "4" {
			return true
		}
		for _, kw := range bookingIntentWords {
			if w == kw {
				return true
			}
		}
	}
	return false
}

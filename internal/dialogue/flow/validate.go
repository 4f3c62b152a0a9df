package flow

import (
	"regexp"
	"strings"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9+\-() ]+$`)
)

const minPhoneDigits = 8

// ValidateInput applies the per-state validator to raw input. Invalid input
// keeps the machine in the same state; the returned message is the user-facing
// re-prompt, never an internal error.
func ValidateInput(state model.State, raw string) (bool, string) {
	v := strings.TrimSpace(raw)

	switch state {
	case model.StateBookName:
		if len([]rune(v)) < 2 {
			return false, "That name looks too short. Could you give me your full name?"
		}
	case model.StateBookEmail:
		if !emailRe.MatchString(v) {
			return false, "That doesn't look like a valid email. Could you check it? (e.g. name@company.com)"
		}
	case model.StateBookPhone:
		if !phoneRe.MatchString(v) || countDigits(v) < minPhoneDigits {
			return false, "That doesn't look like a valid phone number. Please include at least 8 digits."
		}
	}

	return true, ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

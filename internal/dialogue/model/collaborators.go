package model

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

// LanguageModel is the opaque language-model collaborator: embeddings for
// retrieval queries and chat completions for deferred RAG turns.
type LanguageModel interface {
	// Embed converts text into a fixed-length embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Complete generates a draft reply from a language-conditioned system
	// prompt plus bounded message history.
	Complete(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
}

// SessionRepository is the durable session store contract. Get returns
// (nil, nil) on a store miss. Every successful read refreshes the TTL
// (sliding expiry keyed by activity).
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*SessionState, error)
	Set(ctx context.Context, sessionID string, state *SessionState, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	RefreshTTL(ctx context.Context, sessionID string, ttl time.Duration) error
}

// TranscriptRepository keeps the raw user/assistant message transcript used
// as model context on deferred turns.
type TranscriptRepository interface {
	AddMessage(ctx context.Context, sessionID string, message *schema.Message) error
	Recent(ctx context.Context, sessionID string, maxTurns int) ([]*schema.Message, error)
	Clear(ctx context.Context, sessionID string) error
}

// Notifier is the fire-and-forget contract toward CRM/webhook/calendar
// collaborators. Implementations must never block a reply on completion
// or failure.
type Notifier interface {
	Notify(ctx context.Context, eventType string, payload map[string]any)
}

// Confirmation is the explicit booking confirmation record. A booking is
// confirmed if and only if all four fields are present and Status equals
// "confirmed"; nothing heuristic or optimistic is permitted.
type Confirmation struct {
	BookingID string    `json:"booking_id"`
	StartsAt  time.Time `json:"starts_at"`
	Timezone  string    `json:"timezone"`
	Status    string    `json:"status"`
}

// Valid reports whether the record carries every required field.
func (c *Confirmation) Valid() bool {
	if c == nil {
		return false
	}
	return strings.TrimSpace(c.BookingID) != "" &&
		!c.StartsAt.IsZero() &&
		strings.TrimSpace(c.Timezone) != "" &&
		c.Status == "confirmed"
}

// Confirmations looks up the booking confirmation for a session from the
// calendar collaborator. Lookup returns (nil, nil) when no record exists yet.
type Confirmations interface {
	Lookup(ctx context.Context, sessionID string) (*Confirmation, error)
}

package model

import "time"

// HistoryLimit bounds the visited-states history kept per session.
// History is diagnostic only and never used for correctness.
const HistoryLimit = 20

// SessionState is the one durable record kept per conversation session.
// Data accumulates collected booking fields monotonically; fields are
// added or overwritten, never deleted mid-flow.
type SessionState struct {
	Current   State             `json:"current"`
	Data      map[string]string `json:"data"`
	History   []State           `json:"history"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewSessionState returns a fresh session positioned at the initial state.
func NewSessionState(now time.Time) *SessionState {
	return &SessionState{
		Current:   StateWelcome,
		Data:      map[string]string{},
		History:   []State{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Visit moves the session to next, appending the previous state to the
// bounded history.
func (s *SessionState) Visit(next State, now time.Time) {
	s.History = append(s.History, s.Current)
	if len(s.History) > HistoryLimit {
		s.History = s.History[len(s.History)-HistoryLimit:]
	}
	s.Current = next
	s.UpdatedAt = now
}

// Apply merges a data patch into the collected fields.
func (s *SessionState) Apply(patch map[string]string) {
	if len(patch) == 0 {
		return
	}
	if s.Data == nil {
		s.Data = map[string]string{}
	}
	for k, v := range patch {
		s.Data[k] = v
	}
}

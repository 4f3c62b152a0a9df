package model

// TurnInput represents one inbound user message for a session.
type TurnInput struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	// Language optionally forces the reply language (ISO 639-1); when empty
	// the configured default language is used.
	Language string `json:"language,omitempty"`
}

// Reply is the shape returned to the caller for every turn.
type Reply struct {
	Message       string `json:"message"`
	NextState     string `json:"next_state"`
	UsedRetrieval bool   `json:"used_retrieval"`
	Language      string `json:"language"`
}

package model

// ================ Config ================
type SessionConfig struct {
	TTL string `envconfig:"SESSION_TTL" default:"30m"`
}

type RetrievalConfig struct {
	TopK                int     `envconfig:"RETRIEVAL_TOP_K" default:"8"`
	SimilarityThreshold float64 `envconfig:"RETRIEVAL_SIMILARITY_THRESHOLD" default:"0.55"`
	ContextBudgetChars  int     `envconfig:"RETRIEVAL_CONTEXT_BUDGET_CHARS" default:"12000"`
}

type AnswerModelConfig struct {
	Model       string  `envconfig:"ANSWER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"ANSWER_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"ANSWER_TEMPERATURE" default:"0.3"`
}

type EmbeddingConfig struct {
	Model    string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-004"`
	TaskType string `envconfig:"EMBEDDING_TASK_TYPE" default:"RETRIEVAL_QUERY"`
}

type PromptConfig struct {
	BusinessType    string `envconfig:"PROMPT_BUSINESS_TYPE" default:"AI agent agency"`
	BusinessName    string `envconfig:"PROMPT_BUSINESS_NAME" default:"LeadGate"`
	DefaultLanguage string `envconfig:"PROMPT_DEFAULT_LANGUAGE" default:"en"`
}

type NotifierConfig struct {
	WebhookURL     string `envconfig:"NOTIFY_WEBHOOK_URL"`
	TimeoutSeconds int    `envconfig:"NOTIFY_TIMEOUT_SECONDS" default:"5"`
	MaxRetries     uint64 `envconfig:"NOTIFY_MAX_RETRIES" default:"3"`
}

type TranscriptConfig struct {
	MaxTurns int `envconfig:"TRANSCRIPT_MAX_TURNS" default:"10"`
}

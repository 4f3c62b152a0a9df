package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/leadgate-ai/dialogue-core/internal/core"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/guardrail"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/llm"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/metrics"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/notify"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/observe"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/orchestrator"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/retrieval"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/session"
	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
	pkgredis "github.com/leadgate-ai/dialogue-core/pkg/redis"
)

// AppConfig defines all configurable parameters for the dialogue core demo,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis       pkgredis.Config
	PostgresDSN string `envconfig:"POSTGRES_DSN" required:"true"`

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Dialogue configs
	Session    model.SessionConfig
	Retrieval  model.RetrievalConfig
	Answer     model.AnswerModelConfig
	Embedding  model.EmbeddingConfig
	Prompt     model.PromptConfig
	Notifier   model.NotifierConfig
	Transcript model.TranscriptConfig
}

func main() {
	fmt.Println("Starting dialogue core demo...")
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()
	fmt.Println("Connected to Redis successfully")

	db, err := gorm.Open(postgres.Open(envCfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	fmt.Println("Connected to Postgres successfully")

	ttl, err := time.ParseDuration(envCfg.Session.TTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL '%s': %v", envCfg.Session.TTL, err)
	}

	collaborator, err := llm.NewGeminiCollaborator(ctx, llm.Config{
		APIKey:    envCfg.APIKey,
		BaseURL:   envCfg.BaseURL,
		Answer:    envCfg.Answer,
		Embedding: envCfg.Embedding,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini collaborator: %v", err)
	}

	callbacks.AppendGlobalHandlers(observe.NewHandler())

	agg := metrics.NewAggregator()

	bot := orchestrator.New(orchestrator.Deps{
		Sessions:    session.NewManager(session.NewRedisSessionRepository(rdb), ttl, agg),
		Transcripts: session.NewRedisTranscriptRepository(rdb, ttl),
		Retriever:   retrieval.New(retrieval.NewGormBackend(db), collaborator, envCfg.Retrieval),
		Model:       collaborator,
		Guardrail:   guardrail.NewDefault(),
		Notifier:    notify.NewWebhookNotifier(envCfg.Notifier),
		Metrics:     agg,
	}, orchestrator.Config{
		Prompt:     envCfg.Prompt,
		Transcript: envCfg.Transcript,
	})

	testTurns := []struct {
		description string
		message     string
	}{
		{"Initial greeting", "hi there"},
		{"Menu selection by keyword", "tell me about pricing"},
		{"Plan selection", "the essential one"},
		{"Open question, deferred to retrieval", "does it work with WhatsApp groups?"},
		{"Direct booking intent from a detail state", "ok let's book a demo"},
		{"Name", "Ada Lovelace"},
		{"Email", "ada@example.com"},
		{"Phone", "+34 600 123 456"},
		{"Company", "Analytical Engines SL"},
		{"Employees", "about 40"},
		{"Channel", "whatsapp"},
		{"Goal", "qualify inbound leads before sales touches them"},
	}

	sessionID := "demo-session-001"

	for i, turn := range testTurns {
		fmt.Printf("\n🚀 Turn %d: %s\n", i+1, turn.description)
		fmt.Printf("User: %q\n", turn.message)

		reply, err := bot.HandleTurn(ctx, model.TurnInput{
			SessionID: sessionID,
			Message:   turn.message,
		})
		if err != nil {
			log.Fatalf("Failed to handle turn %d: %v", i+1, err)
		}

		fmt.Printf("Bot [%s]: %s\n", reply.NextState, reply.Message)
		fmt.Println("─────────────────────────────────────────────")

		time.Sleep(300 * time.Millisecond)
	}

	fmt.Printf("\n🎉 Demo completed. Metrics: %v\n", agg.Snapshot())
}

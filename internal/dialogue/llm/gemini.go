// Package llm implements the language-model collaborator on Google Gemini:
// chat completions through the Eino gemini component and query embeddings
// through the genai client.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// Config holds what is needed to construct the Gemini collaborator.
type Config struct {
	APIKey    string
	BaseURL   string
	Answer    model.AnswerModelConfig
	Embedding model.EmbeddingConfig
}

// GeminiCollaborator satisfies model.LanguageModel.
type GeminiCollaborator struct {
	chat       *gemini.ChatModel
	client     *genai.Client
	embedModel string
	taskType   string
}

// NewGeminiCollaborator creates the Gemini client, chat model and embedder.
func NewGeminiCollaborator(ctx context.Context, cfg Config) (*GeminiCollaborator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Answer.Model,
		Temperature: &cfg.Answer.Temperature,
		MaxTokens:   &cfg.Answer.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating answer model")
		return nil, fmt.Errorf("error creating answer model: %w", err)
	}

	return &GeminiCollaborator{
		chat:       chatModel,
		client:     client,
		embedModel: cfg.Embedding.Model,
		taskType:   cfg.Embedding.TaskType,
	}, nil
}

// Embed converts text into an embedding vector.
func (c *GeminiCollaborator) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := c.client.Models.EmbedContent(ctx, c.embedModel, genai.Text(text), &genai.EmbedContentConfig{
		TaskType: c.taskType,
	})
	if err != nil {
		logx.Error().Err(err).Str("model", c.embedModel).Msg("embedding call failed")
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(res.Embeddings) == 0 || len(res.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embed content: empty embedding for model %s", c.embedModel)
	}
	return res.Embeddings[0].Values, nil
}

// Complete generates a draft reply from the prepared messages.
func (c *GeminiCollaborator) Complete(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	out, err := c.chat.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Msg("completion call failed")
		return nil, fmt.Errorf("generate completion: %w", err)
	}
	return out, nil
}

var _ model.LanguageModel = (*GeminiCollaborator)(nil)

// Package prompts renders the system prompts for deferred RAG turns via the
// Eino prompt component, so prompt callbacks fire on every render.
package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

//go:embed template/answer_prompt.txt
var answerSystemPrompt string

// RenderAnswerSystem renders the language-conditioned answer system prompt
// with the assembled knowledge context.
func RenderAnswerSystem(ctx context.Context, cfg model.PromptConfig, knowledgeContext, language string) (string, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		lang = cfg.DefaultLanguage
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(answerSystemPrompt),
	)
	vars := map[string]any{
		"BusinessName":     cfg.BusinessName,
		"BusinessType":     cfg.BusinessType,
		"Language":         lang,
		"KnowledgeContext": knowledgeContext,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("answer prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("answer prompt render: empty result")
	}
	return msgs[0].Content, nil
}

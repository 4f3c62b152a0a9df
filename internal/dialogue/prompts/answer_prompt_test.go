package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

func TestRenderAnswerSystem(t *testing.T) {
	cfg := model.PromptConfig{
		BusinessName:    "LeadGate",
		BusinessType:    "AI agent agency",
		DefaultLanguage: "en",
	}

	sys, err := RenderAnswerSystem(context.Background(), cfg, "[source: faq.md | Plans]\nplan details\n\n", "es")

	require.NoError(t, err)
	assert.Contains(t, sys, "LeadGate")
	assert.Contains(t, sys, "AI agent agency")
	assert.Contains(t, sys, `"es"`)
	assert.Contains(t, sys, "plan details")
	assert.NotContains(t, sys, "{{", "all template variables must be substituted")
}

func TestRenderAnswerSystemDefaultsLanguage(t *testing.T) {
	cfg := model.PromptConfig{BusinessName: "LeadGate", BusinessType: "AI agent agency", DefaultLanguage: "en"}

	sys, err := RenderAnswerSystem(context.Background(), cfg, "ctx", "   ")

	require.NoError(t, err)
	assert.Contains(t, sys, `"en"`)
}

package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntents(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"how much does the Growth plan cost?", []string{"pricing"}},
		{"is there a message volume limit?", []string{"limits"}},
		{"do you have an SLA and GDPR compliance?", []string{"enterprise"}},
		{"what's on the roadmap for WhatsApp?", []string{"agents", "roadmap"}},
		{"can I buy an addon pack?", []string{"packs"}},
		{"the bot is broken, help!", []string{"agents", "support"}},
		{"tell me a story", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntents(tt.query))
		})
	}
}

func TestHasAnyTag(t *testing.T) {
	c := &KnowledgeChunk{Tags: []string{"pricing", "packs"}}

	assert.True(t, c.HasAnyTag(nil), "empty filter matches everything")
	assert.True(t, c.HasAnyTag([]string{"pricing"}))
	assert.True(t, c.HasAnyTag([]string{"roadmap", "packs"}))
	assert.False(t, c.HasAnyTag([]string{"support"}))
}

// Package retrieval implements the RAG gate: intent classification by
// keyword families, nearest-neighbor knowledge lookup over pgvector, the
// anti-hallucination similarity threshold and the character-budgeted
// context assembler.
package retrieval

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// KnowledgeChunk is one unit of retrievable content. Chunks are immutable
// once indexed; the dialogue core only ever reads them.
type KnowledgeChunk struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Source     string                      `gorm:"type:text;not null"`
	Title      string                      `gorm:"type:text"`
	Content    string                      `gorm:"type:text;not null"`
	Embedding  pgvector.Vector             `gorm:"type:vector(768)"` // text-embedding-004 dimensions
	Tags       datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	TokenCount int                         `gorm:"default:0"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime"`
}

// TableName sets the chunk table name.
func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}

// ScoredChunk pairs a chunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk      KnowledgeChunk
	Similarity float64
}

// HasAnyTag reports whether the chunk carries at least one of the tags.
// An empty filter matches everything.
func (c *KnowledgeChunk) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range c.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

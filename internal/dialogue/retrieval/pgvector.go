package retrieval

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// tagOverfetch widens the SQL candidate set when a tag filter applies,
// since tag filtering happens after the distance scan.
const tagOverfetch = 4

// GormBackend serves nearest-neighbor lookups from a pgvector-enabled
// Postgres table via gorm.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend creates a pgvector knowledge backend.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

type nearestRow struct {
	KnowledgeChunk `gorm:"embedded"`
	Similarity     float64
}

// Nearest returns the k most similar chunks by cosine similarity, filtered
// by intent tags when any are given.
func (b *GormBackend) Nearest(ctx context.Context, embedding []float32, k int, tags []string) ([]ScoredChunk, error) {
	if k <= 0 {
		k = 8
	}
	fetch := k
	if len(tags) > 0 {
		fetch = k * tagOverfetch
	}

	var rows []nearestRow
	err := b.nearestQuery(ctx, pgvector.NewVector(embedding), fetch).Find(&rows).Error
	if err != nil {
		logx.Error().Err(err).Msg("pgvector nearest lookup failed")
		return nil, err
	}

	out := make([]ScoredChunk, 0, k)
	for i := range rows {
		if !rows[i].KnowledgeChunk.HasAnyTag(tags) {
			continue
		}
		out = append(out, ScoredChunk{Chunk: rows[i].KnowledgeChunk, Similarity: rows[i].Similarity})
		if len(out) == k {
			break
		}
	}
	return out, nil
}

// nearestQuery builds the ranked similarity scan. Ordering must go through
// the selected alias as a plain string: gorm's Order silently drops raw
// expression values.
func (b *GormBackend) nearestQuery(ctx context.Context, vec pgvector.Vector, fetch int) *gorm.DB {
	return b.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding <=> ?) AS similarity", vec).
		Order("similarity DESC").
		Limit(fetch)
}

var _ Backend = (*GormBackend)(nil)

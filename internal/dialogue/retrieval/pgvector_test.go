package retrieval

import (
	"context"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestNearestQueryIsRankedBySimilarity(t *testing.T) {
	b := NewGormBackend(dryRunDB(t))
	vec := pgvector.NewVector([]float32{0.1, 0.2, 0.3})

	var rows []nearestRow
	stmt := b.nearestQuery(context.Background(), vec, 8).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "1 - (embedding <=> $1) AS similarity")
	assert.Contains(t, sql, "ORDER BY similarity DESC")
	assert.Contains(t, sql, "LIMIT")
}

package retrieval

import "context"

// Backend is the vector knowledge collaborator: ordered nearest-neighbor
// lookup with similarity scores, optionally filtered by intent tags.
type Backend interface {
	Nearest(ctx context.Context, embedding []float32, k int, tags []string) ([]ScoredChunk, error)
}

package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// Result is the ephemeral outcome of one retrieval. When BelowThreshold is
// set the context is empty and the orchestrator must answer with a guided
// clarification instead of letting the model guess.
type Result struct {
	TopSimilarity  float64
	BelowThreshold bool
	ChunksUsed     []ScoredChunk
	Context        string
	ContextChars   int
	Sources        []string
	IntentTags     []string
}

// Retriever embeds queries, fetches nearest chunks and assembles bounded
// context.
type Retriever struct {
	backend Backend
	llm     model.LanguageModel

	topK      int
	threshold float64
	budget    int
}

// New creates a retriever from config, falling back to sane defaults for
// zero values.
func New(backend Backend, llm model.LanguageModel, cfg model.RetrievalConfig) *Retriever {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 8
	}
	threshold := cfg.SimilarityThreshold
	if threshold <= 0 {
		threshold = 0.55
	}
	budget := cfg.ContextBudgetChars
	if budget <= 0 {
		budget = 12000
	}
	return &Retriever{
		backend:   backend,
		llm:       llm,
		topK:      topK,
		threshold: threshold,
		budget:    budget,
	}
}

// Retrieve runs the full gate: classify intents, embed, fetch nearest
// chunks, apply the anti-hallucination threshold, and greedily pack chunks
// into the character budget.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Result, error) {
	tags := ClassifyIntents(query)

	embedding, err := r.llm.Embed(ctx, query)
	if err != nil {
		logx.Error().Err(err).Msg("query embedding failed")
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.backend.Nearest(ctx, embedding, r.topK, tags)
	if err != nil {
		logx.Error().Err(err).Msg("nearest chunk lookup failed")
		return nil, fmt.Errorf("nearest chunks: %w", err)
	}

	res := &Result{IntentTags: tags}
	if len(scored) == 0 {
		res.BelowThreshold = true
		return res, nil
	}

	res.TopSimilarity = scored[0].Similarity
	// Strict less-than: ties at the boundary pass.
	if res.TopSimilarity < r.threshold {
		logx.Debug().
			Float64("top_similarity", res.TopSimilarity).
			Float64("threshold", r.threshold).
			Msg("top similarity below threshold, withholding context")
		res.BelowThreshold = true
		return res, nil
	}

	r.pack(res, scored)
	return res, nil
}

// pack greedily assembles chunks into the character budget. A chunk that
// would exceed the budget ends the packing; chunks are never truncated.
func (r *Retriever) pack(res *Result, scored []ScoredChunk) {
	var b strings.Builder
	seen := map[string]bool{}

	for _, sc := range scored {
		formatted := formatChunk(&sc.Chunk)
		if b.Len()+len(formatted) > r.budget {
			break
		}
		b.WriteString(formatted)
		res.ChunksUsed = append(res.ChunksUsed, sc)
		if !seen[sc.Chunk.Source] {
			seen[sc.Chunk.Source] = true
			res.Sources = append(res.Sources, sc.Chunk.Source)
		}
	}

	res.Context = b.String()
	res.ContextChars = b.Len()
}

func formatChunk(c *KnowledgeChunk) string {
	return fmt.Sprintf("[source: %s | %s]\n%s\n\n", c.Source, c.Title, c.Content)
}

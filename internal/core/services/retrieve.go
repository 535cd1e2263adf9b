package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// DefaultRetrievalTimeout bounds retrieval, which sits on the critical path
// before any useful work begins. Deliberately shorter than the generation
// timeout.
const DefaultRetrievalTimeout = 10 * time.Second

// Retriever embeds a question and searches the collection's namespace for the
// most similar chunks.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex

	minSimilarity float64
	timeout       time.Duration
}

// RetrieverOption configures the retriever.
type RetrieverOption func(*Retriever)

// WithMinSimilarity sets the minimum similarity a chunk must reach to be
// returned. The default of 0 is permissive; an empty result set means "no
// relevant context found" and is valid, not an error.
func WithMinSimilarity(min float64) RetrieverOption {
	return func(r *Retriever) {
		if min > 0 {
			r.minSimilarity = min
		}
	}
}

// WithRetrievalTimeout sets the deadline applied to one retrieval.
func WithRetrievalTimeout(d time.Duration) RetrieverOption {
	return func(r *Retriever) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder driven.EmbeddingService, index driven.VectorIndex, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		embedder: embedder,
		index:    index,
		timeout:  DefaultRetrievalTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns the chunks most similar to the question within the
// collection's namespace, ranked by descending similarity, filtered by the
// minimum similarity threshold.
//
// The collection arrives already resolved so retrieval cannot drift from the
// configuration the rest of the request uses. An embedding failure wraps
// domain.ErrEmbedding and is propagated, never silently replaced with an
// empty vector.
func (r *Retriever) Retrieve(ctx context.Context, col *domain.Collection, question string, topK int) ([]domain.RetrievedChunk, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	if col.EmbeddingModelID != "" && col.EmbeddingModelID != r.embedder.ModelID() {
		return nil, fmt.Errorf("%w: collection %q expects %q, embedder provides %q",
			domain.ErrModelMismatch, col.ID, col.EmbeddingModelID, r.embedder.ModelID())
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	logger.Debug("State: %s, collection: %s, namespace: %s, topK: %d",
		domain.StateEmbedding, col.ID, col.VectorNamespace, topK)
	vector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embed question: %v", domain.ErrEmbedding, err)
	}

	logger.Debug("State: %s", domain.StateRetrieving)
	hits, err := r.index.Search(ctx, col.VectorNamespace, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search in namespace %s: %w", col.VectorNamespace, err)
	}

	if r.minSimilarity > 0 {
		filtered := hits[:0]
		for _, hit := range hits {
			if hit.Similarity >= r.minSimilarity {
				filtered = append(filtered, hit)
			}
		}
		hits = filtered
	}

	logger.Debug("Retrieval: %d chunks above threshold %.3f", len(hits), r.minSimilarity)
	return hits, nil
}

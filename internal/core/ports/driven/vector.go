package driven

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// VectorIndex provides tenant-partitioned similarity search.
//
// The namespace is a mandatory parameter on every operation; cross-namespace
// leakage is a correctness violation and Search must never return results
// from another namespace. Tie-break for equal similarity scores is stable by
// chunk ID ascending so results are deterministic.
type VectorIndex interface {
	// Upsert stores the chunks with their embeddings under the namespace.
	// Chunks for a file replace any previously stored chunks of that file,
	// atomically from a concurrent reader's perspective.
	Upsert(ctx context.Context, namespace string, chunks []domain.Chunk) error

	// DeleteFile removes all chunks belonging to the file. Atomic from a
	// concurrent reader's perspective: either all are gone or none are.
	DeleteFile(ctx context.Context, namespace, fileID string) error

	// Search finds the k most similar chunks to the query vector within the
	// namespace, ranked by descending similarity.
	Search(ctx context.Context, namespace string, query []float32, k int) ([]domain.RetrievedChunk, error)

	// Close releases resources.
	Close() error
}

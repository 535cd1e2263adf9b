package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// It is called at two sites: document chunks at ingestion and single
// questions at ask time. Both must use the same model per collection for
// cosine similarity to be meaningful, so the service exposes ModelID and
// callers compare it against a chunk's stored model.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// Batching matters for ingestion throughput, not correctness.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536, 3072).
	Dimensions() int

	// ModelID returns the identifier of the embedding model being used.
	ModelID() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

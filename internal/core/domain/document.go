package domain

import "time"

// Document represents one uploaded file within a collection.
// The raw text arrives already extracted; parsing lives outside the core.
type Document struct {
	// FileID is the unique identifier for the document.
	FileID string

	// CollectionID is the tenant namespace the document belongs to.
	CollectionID string

	// SourceName is the original filename, kept for citations.
	SourceName string

	// Text is the full extracted plain text before chunking.
	Text string

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time
}

// Chunk represents a contiguous slice of a document's text, stored with its
// embedding. Chunks are immutable after ingestion and deleted with their
// parent document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// FileID links to the parent document.
	FileID string

	// CollectionID is the tenant namespace the chunk belongs to.
	CollectionID string

	// SourceName is the parent document's filename, denormalised for citations.
	SourceName string

	// Text is the chunk content.
	Text string

	// StartOffset and EndOffset locate the chunk in the document text.
	StartOffset int
	EndOffset   int

	// Embedding is the vector representation used for similarity search.
	Embedding []float32

	// EmbeddingModelID records the model that produced the embedding.
	// A mismatch with the collection's current model is a staleness signal.
	EmbeddingModelID string
}

// RetrievedChunk pairs a chunk with its similarity score for one query.
// Retrieval results are ephemeral and never persisted.
type RetrievedChunk struct {
	Chunk Chunk

	// Similarity is the cosine similarity against the query vector (0-1).
	Similarity float64
}

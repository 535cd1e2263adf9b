package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docqa/internal/chunker"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// IngestService turns uploaded document text into indexed chunk vectors.
//
// Writes are serialized per vector namespace so concurrent ingestions for the
// same collection cannot interleave into partially visible chunk sets.
// Searches are never blocked; atomicity of the replace itself is the vector
// index adapter's contract.
type IngestService struct {
	registry driven.CollectionRegistry
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	splitter *chunker.Chunker

	mu      sync.Mutex
	nsLocks map[string]*sync.Mutex
}

// NewIngestService creates a new ingestion service.
func NewIngestService(
	registry driven.CollectionRegistry,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	splitter *chunker.Chunker,
) *IngestService {
	if splitter == nil {
		splitter = chunker.New()
	}
	return &IngestService{
		registry: registry,
		embedder: embedder,
		index:    index,
		splitter: splitter,
		nsLocks:  make(map[string]*sync.Mutex),
	}
}

// IndexDocument chunks, embeds and stores the document under the collection's
// namespace. Idempotent per file ID: prior chunks for the file are replaced.
// Empty text removes any prior chunks and stores nothing.
func (s *IngestService) IndexDocument(ctx context.Context, collectionID, fileID, sourceName, text string) error {
	if strings.TrimSpace(fileID) == "" {
		return fmt.Errorf("%w: file id is required", domain.ErrInvalidInput)
	}

	col, err := s.registry.Resolve(ctx, collectionID)
	if err != nil {
		return fmt.Errorf("resolve collection %q: %w", collectionID, err)
	}

	if col.EmbeddingModelID != "" && col.EmbeddingModelID != s.embedder.ModelID() {
		return fmt.Errorf("%w: collection %q expects %q, embedder provides %q",
			domain.ErrModelMismatch, collectionID, col.EmbeddingModelID, s.embedder.ModelID())
	}

	logger.Section("Document Ingestion")
	logger.Debug("Collection: %s, file: %s, source: %q, %d bytes", collectionID, fileID, sourceName, len(text))

	pieces := s.splitter.Split(text)
	if len(pieces) == 0 {
		// Re-upload of an emptied document still replaces the old chunk set.
		logger.Info("No chunks produced, removing prior chunks for file %s", fileID)
		return s.removeLocked(ctx, col.VectorNamespace, fileID)
	}

	texts := make([]string, len(pieces))
	for i, p := range pieces {
		texts[i] = p.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embed %d chunks for file %s: %v", domain.ErrEmbedding, len(texts), fileID, err)
	}
	if len(vectors) != len(pieces) {
		return fmt.Errorf("%w: expected %d vectors, got %d", domain.ErrEmbedding, len(pieces), len(vectors))
	}

	chunks := make([]domain.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = domain.Chunk{
			ID:               uuid.New().String(),
			FileID:           fileID,
			CollectionID:     collectionID,
			SourceName:       sourceName,
			Text:             p.Text,
			StartOffset:      p.Start,
			EndOffset:        p.End,
			Embedding:        vectors[i],
			EmbeddingModelID: s.embedder.ModelID(),
		}
	}

	unlock := s.lockNamespace(col.VectorNamespace)
	defer unlock()

	if err := s.index.Upsert(ctx, col.VectorNamespace, chunks); err != nil {
		return fmt.Errorf("upsert %d chunks for file %s: %w", len(chunks), fileID, err)
	}

	logger.Info("Indexed file %s: %d chunks in namespace %s", fileID, len(chunks), col.VectorNamespace)
	return nil
}

// RemoveDocument deletes all chunks for the file from the collection.
func (s *IngestService) RemoveDocument(ctx context.Context, collectionID, fileID string) error {
	if strings.TrimSpace(fileID) == "" {
		return fmt.Errorf("%w: file id is required", domain.ErrInvalidInput)
	}

	col, err := s.registry.Resolve(ctx, collectionID)
	if err != nil {
		return fmt.Errorf("resolve collection %q: %w", collectionID, err)
	}

	return s.removeLocked(ctx, col.VectorNamespace, fileID)
}

func (s *IngestService) removeLocked(ctx context.Context, namespace, fileID string) error {
	unlock := s.lockNamespace(namespace)
	defer unlock()

	if err := s.index.DeleteFile(ctx, namespace, fileID); err != nil {
		return fmt.Errorf("delete chunks for file %s: %w", fileID, err)
	}
	logger.Debug("Removed chunks for file %s from namespace %s", fileID, namespace)
	return nil
}

// lockNamespace acquires the single-writer lock for a namespace and returns
// the release function.
func (s *IngestService) lockNamespace(namespace string) func() {
	s.mu.Lock()
	l, ok := s.nsLocks[namespace]
	if !ok {
		l = &sync.Mutex{}
		s.nsLocks[namespace] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

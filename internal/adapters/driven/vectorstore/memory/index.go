// Package memory provides an in-memory vector index. Suitable for tests and
// small single-process installs; a pgvector adapter covers everything else.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a namespaced in-memory cosine-similarity index.
//
// Each namespace is a fully separate partition; a search can only ever see
// chunks stored under the namespace it names. Mutations swap whole per-file
// chunk sets under the write lock, so a concurrent reader observes either all
// of a file's chunks or none of them.
type Index struct {
	mu         sync.RWMutex
	namespaces map[string]*partition
}

// partition holds one namespace's chunks.
type partition struct {
	chunks map[string]domain.Chunk // chunk ID -> chunk
	files  map[string][]string     // file ID -> chunk IDs
}

// NewIndex creates a new in-memory vector index.
func NewIndex() *Index {
	return &Index{
		namespaces: make(map[string]*partition),
	}
}

// Upsert replaces the file's chunk set with the given chunks.
func (idx *Index) Upsert(_ context.Context, namespace string, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	p, ok := idx.namespaces[namespace]
	if !ok {
		p = &partition{
			chunks: make(map[string]domain.Chunk),
			files:  make(map[string][]string),
		}
		idx.namespaces[namespace] = p
	}

	// Replace semantics: drop any prior chunks for the files being written.
	seen := make(map[string]bool)
	for _, c := range chunks {
		if !seen[c.FileID] {
			seen[c.FileID] = true
			p.dropFile(c.FileID)
		}
	}

	for _, c := range chunks {
		p.chunks[c.ID] = c
		p.files[c.FileID] = append(p.files[c.FileID], c.ID)
	}
	return nil
}

// DeleteFile removes all chunks belonging to the file.
func (idx *Index) DeleteFile(_ context.Context, namespace, fileID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	p, ok := idx.namespaces[namespace]
	if !ok {
		return nil
	}
	p.dropFile(fileID)
	return nil
}

// Search returns the k most similar chunks within the namespace, ranked by
// descending cosine similarity. Ties break by chunk ID ascending so results
// are deterministic.
func (idx *Index) Search(_ context.Context, namespace string, query []float32, k int) ([]domain.RetrievedChunk, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	p, ok := idx.namespaces[namespace]
	if !ok || k <= 0 {
		return nil, nil
	}

	results := make([]domain.RetrievedChunk, 0, len(p.chunks))
	for _, c := range p.chunks {
		results = append(results, domain.RetrievedChunk{
			Chunk:      c,
			Similarity: cosineSimilarity(query, c.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// dropFile removes a file's chunks. Caller holds the write lock.
func (p *partition) dropFile(fileID string) {
	for _, id := range p.files[fileID] {
		delete(p.chunks, id)
	}
	delete(p.files, fileID)
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

func chunk(id, fileID string, embedding []float32) domain.Chunk {
	return domain.Chunk{
		ID:         id,
		FileID:     fileID,
		SourceName: fileID + ".pdf",
		Text:       "text of " + id,
		Embedding:  embedding,
	}
}

func TestIndex_SearchRanksBySimilarity(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	err := idx.Upsert(ctx, "ns-a", []domain.Chunk{
		chunk("c1", "f1", []float32{1, 0, 0}),
		chunk("c2", "f1", []float32{0, 1, 0}),
		chunk("c3", "f1", []float32{0.9, 0.1, 0}),
	})
	require.NoError(t, err)

	hits, err := idx.Search(ctx, "ns-a", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "c1", hits[0].Chunk.ID)
	assert.Equal(t, "c3", hits[1].Chunk.ID)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestIndex_NamespaceIsolation(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, "tenant-a", []domain.Chunk{
		chunk("a1", "f1", []float32{1, 0}),
	}))
	require.NoError(t, idx.Upsert(ctx, "tenant-b", []domain.Chunk{
		chunk("b1", "f2", []float32{1, 0}),
	}))

	hits, err := idx.Search(ctx, "tenant-b", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b1", hits[0].Chunk.ID)

	hits, err = idx.Search(ctx, "tenant-unknown", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_EqualScoresTieBreakByChunkID(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	// Identical embeddings produce identical similarity scores.
	require.NoError(t, idx.Upsert(ctx, "ns", []domain.Chunk{
		chunk("c-b", "f1", []float32{1, 0}),
		chunk("c-a", "f1", []float32{1, 0}),
		chunk("c-c", "f1", []float32{1, 0}),
	}))

	hits, err := idx.Search(ctx, "ns", []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "c-a", hits[0].Chunk.ID)
	assert.Equal(t, "c-b", hits[1].Chunk.ID)
	assert.Equal(t, "c-c", hits[2].Chunk.ID)
}

func TestIndex_UpsertReplacesFileChunks(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, "ns", []domain.Chunk{
		chunk("old1", "f1", []float32{1, 0}),
		chunk("old2", "f1", []float32{1, 0}),
	}))
	require.NoError(t, idx.Upsert(ctx, "ns", []domain.Chunk{
		chunk("new1", "f1", []float32{1, 0}),
	}))

	hits, err := idx.Search(ctx, "ns", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "new1", hits[0].Chunk.ID)
}

func TestIndex_DeleteFileRemovesAllChunks(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, "ns", []domain.Chunk{
		chunk("c1", "f1", []float32{1, 0}),
		chunk("c2", "f1", []float32{0, 1}),
		chunk("c3", "f2", []float32{1, 1}),
	}))
	require.NoError(t, idx.DeleteFile(ctx, "ns", "f1"))

	hits, err := idx.Search(ctx, "ns", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "f2", hits[0].Chunk.FileID)

	// Deleting an unknown file is a no-op.
	assert.NoError(t, idx.DeleteFile(ctx, "ns", "missing"))
	assert.NoError(t, idx.DeleteFile(ctx, "missing-ns", "f1"))
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"mismatched lengths", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

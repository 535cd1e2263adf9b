package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing. Vectors are
// deterministic per input so tests can assert exact values.
type mockEmbedder struct {
	modelID    string
	dimensions int
	embedErr   error
	batchErr   error

	embedCalls []string
	batchCalls [][]string
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{modelID: "text-embedding-3-small", dimensions: 3}
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	v := make([]float32, m.dimensions)
	for i := range v {
		v[i] = float32(len(text)%7) + float32(i)
	}
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls = append(m.embedCalls, text)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls = append(m.batchCalls, texts)
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = m.vectorFor(t)
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int              { return m.dimensions }
func (m *mockEmbedder) ModelID() string              { return m.modelID }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	hits      []domain.RetrievedChunk
	searchErr error
	upsertErr error
	deleteErr error

	upserts      [][]domain.Chunk
	upsertNS     []string
	deletedFiles []string
	searchNS     []string
	searchK      []int
}

func (m *mockVectorIndex) Upsert(_ context.Context, namespace string, chunks []domain.Chunk) error {
	m.upsertNS = append(m.upsertNS, namespace)
	m.upserts = append(m.upserts, chunks)
	return m.upsertErr
}

func (m *mockVectorIndex) DeleteFile(_ context.Context, namespace, fileID string) error {
	m.deletedFiles = append(m.deletedFiles, namespace+"/"+fileID)
	return m.deleteErr
}

func (m *mockVectorIndex) Search(_ context.Context, namespace string, _ []float32, k int) ([]domain.RetrievedChunk, error) {
	m.searchNS = append(m.searchNS, namespace)
	m.searchK = append(m.searchK, k)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockLLM implements driven.LLMService for testing. errs are consumed one per
// call, letting tests script fail-then-succeed sequences.
type mockLLM struct {
	response string
	errs     []error

	calls    int
	messages [][]driven.ChatMessage
	opts     []driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls++
	m.messages = append(m.messages, messages)
	m.opts = append(m.opts, opts)
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return "", err
		}
	}
	if m.response != "" {
		return m.response, nil
	}
	return "mock answer", nil
}

func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

var errBoom = errors.New("boom")

package cli

import (
	"context"
	"errors"

	registrymem "github.com/custodia-labs/docqa/internal/adapters/driven/registry/memory"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
)

// mockEngine records calls and returns canned answers.
type mockEngine struct {
	indexed   []string
	removed   []string
	lastAsk   driving.AskRequest
	answer    *domain.Answer
	askErr    error
	indexErr  error
	removeErr error
}

func (m *mockEngine) IndexDocument(_ context.Context, collectionID, fileID, _, _ string) error {
	m.indexed = append(m.indexed, collectionID+"/"+fileID)
	return m.indexErr
}

func (m *mockEngine) RemoveDocument(_ context.Context, collectionID, fileID string) error {
	m.removed = append(m.removed, collectionID+"/"+fileID)
	return m.removeErr
}

func (m *mockEngine) Ask(_ context.Context, req driving.AskRequest) (*domain.Answer, error) {
	m.lastAsk = req
	if m.askErr != nil {
		return nil, m.askErr
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{
		Text:    "The vacation allowance is 25 days.",
		Sources: []string{"leave-policy.pdf"},
		State:   domain.StateSucceeded,
	}, nil
}

var errMockEngine = errors.New("engine exploded")

// setupTestServices wires mock services into the package vars and returns
// a cleanup func restoring the previous ones.
func setupTestServices() (*mockEngine, func()) {
	oldEngine := engineService
	oldRegistry := registryService

	engine := &mockEngine{}
	engineService = engine
	registryService = registrymem.NewRegistry(
		domain.Collection{ID: "support-docs", VectorNamespace: "support", EmbeddingModelID: "text-embedding-3-small"},
	)

	return engine, func() {
		engineService = oldEngine
		registryService = oldRegistry
	}
}

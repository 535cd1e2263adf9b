// Package memory provides an in-memory collection registry, used by tests
// and by callers that resolve tenant configuration from their own storage.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.CollectionRegistry = (*Registry)(nil)

// Registry is an in-memory collection registry.
type Registry struct {
	mu          sync.RWMutex
	collections map[string]domain.Collection
}

// NewRegistry creates a registry pre-loaded with the given collections.
func NewRegistry(collections ...domain.Collection) *Registry {
	r := &Registry{
		collections: make(map[string]domain.Collection, len(collections)),
	}
	for _, c := range collections {
		r.collections[c.ID] = withDefaults(c)
	}
	return r
}

// Add registers or replaces a collection.
func (r *Registry) Add(c domain.Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[c.ID] = withDefaults(c)
}

// Resolve returns the configuration for the collection.
func (r *Registry) Resolve(_ context.Context, collectionID string) (*domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[collectionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrCollectionNotFound, collectionID)
	}
	return &c, nil
}

// List returns all known collections, ordered by ID.
func (r *Registry) List(_ context.Context) ([]domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Collection, 0, len(r.collections))
	for _, c := range r.collections {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// withDefaults fills the vector namespace when a collection leaves it empty.
// The namespace stays an explicit value from here on; nothing downstream
// infers it.
func withDefaults(c domain.Collection) domain.Collection {
	if c.VectorNamespace == "" {
		c.VectorNamespace = c.ID
	}
	return c
}

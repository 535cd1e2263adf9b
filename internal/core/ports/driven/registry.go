package driven

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// CollectionRegistry resolves a collection ID to its immutable tenant
// configuration: vector namespace, embedding model and prompt template.
//
// The engine resolves once per request and threads the resulting value
// through every pipeline stage, so the model a chunk was written with and
// the one a query is embedded with cannot drift within a request.
type CollectionRegistry interface {
	// Resolve returns the configuration for the collection.
	// Returns domain.ErrCollectionNotFound for unknown IDs.
	Resolve(ctx context.Context, collectionID string) (*domain.Collection, error)

	// List returns all known collections, for operational tooling.
	List(ctx context.Context) ([]domain.Collection, error)
}

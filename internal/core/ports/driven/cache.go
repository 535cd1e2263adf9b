package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// AnswerCache memoizes answers per (collection, normalized question) for a
// bounded time. Optional: the engine treats a nil cache as always-miss.
//
// Expiry is passive, checked on read. Staleness only affects a hit, never the
// correctness of a miss, so no active sweeping is required.
type AnswerCache interface {
	// Get returns the cached answer and true on a hit within the TTL window.
	Get(ctx context.Context, collectionID, normalizedQuestion string) (*domain.Answer, bool, error)

	// Put stores the answer with the given TTL.
	Put(ctx context.Context, collectionID, normalizedQuestion string, answer *domain.Answer, ttl time.Duration) error

	// Close releases resources.
	Close() error
}

// Package memory provides an in-memory answer cache with passive TTL expiry.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.AnswerCache = (*Cache)(nil)

// Cache memoizes answers per (collection, normalized question). Expired
// entries are dropped on read; there is no background sweeper, so memory is
// bounded by the working set of distinct questions within one TTL window.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	// now is swappable for tests.
	now func() time.Time
}

type entry struct {
	answer    domain.Answer
	expiresAt time.Time
}

// NewCache creates a new in-memory answer cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached answer and true on a hit within the TTL window.
func (c *Cache) Get(_ context.Context, collectionID, normalizedQuestion string) (*domain.Answer, bool, error) {
	key := cacheKey(collectionID, normalizedQuestion)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have refreshed it.
		if cur, still := c.entries[key]; still && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	answer := cloneAnswer(e.answer)
	return &answer, true, nil
}

// Put stores the answer with the given TTL.
func (c *Cache) Put(_ context.Context, collectionID, normalizedQuestion string, answer *domain.Answer, ttl time.Duration) error {
	if answer == nil || ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(collectionID, normalizedQuestion)] = entry{
		answer:    cloneAnswer(*answer),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// cloneAnswer copies the answer including the Sources backing array, so
// neither the caller nor the cache can mutate the other's slice in place.
func cloneAnswer(a domain.Answer) domain.Answer {
	if a.Sources != nil {
		a.Sources = append([]string(nil), a.Sources...)
	}
	return a
}

// Close releases resources.
func (c *Cache) Close() error {
	return nil
}

func cacheKey(collectionID, normalizedQuestion string) string {
	return collectionID + "\x00" + normalizedQuestion
}

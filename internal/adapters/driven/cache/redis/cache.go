// Package redis provides an answer cache backed by Redis, for deployments
// where several engine replicas should share memoized answers. TTL handling
// is delegated to Redis key expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.AnswerCache = (*Cache)(nil)

const keyPrefix = "docqa:answer:"

// Config holds configuration for the Redis answer cache.
type Config struct {
	// Addr is the Redis server address, host:port (required).
	Addr string

	// Password is the Redis password, empty for none.
	Password string

	// DB is the Redis database number.
	DB int

	// DialTimeout bounds connection establishment (default: 5s).
	DialTimeout time.Duration
}

// Cache is a Redis-backed answer cache.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, cfg Config) (*Cache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: redis ping: %v", domain.ErrCacheUnavailable, err)
	}

	return &Cache{client: client}, nil
}

// Get returns the cached answer and true on a hit. Redis expires keys itself,
// so a present key is always within its TTL window.
func (c *Cache) Get(ctx context.Context, collectionID, normalizedQuestion string) (*domain.Answer, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(collectionID, normalizedQuestion)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: redis get: %v", domain.ErrCacheUnavailable, err)
	}

	var answer domain.Answer
	if err := json.Unmarshal([]byte(val), &answer); err != nil {
		// A corrupt entry behaves like a miss; the next Put overwrites it.
		return nil, false, nil
	}
	return &answer, true, nil
}

// Put stores the answer with the given TTL.
func (c *Cache) Put(ctx context.Context, collectionID, normalizedQuestion string, answer *domain.Answer, ttl time.Duration) error {
	if answer == nil || ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("redis: marshal answer: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(collectionID, normalizedQuestion), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Close releases the client connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

func cacheKey(collectionID, normalizedQuestion string) string {
	return keyPrefix + collectionID + ":" + normalizedQuestion
}

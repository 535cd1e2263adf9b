package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrCollectionNotFound indicates the collection ID does not resolve to a
	// known tenant. Surfaced to callers as a configuration error, never retried.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrTemplateNotFound indicates a prompt template could not be resolved.
	ErrTemplateNotFound = errors.New("prompt template not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuestion indicates an empty or whitespace-only question.
	// Rejected before any network call is made.
	ErrEmptyQuestion = errors.New("empty question")

	// ErrInvalidHistory indicates a malformed conversation history entry.
	ErrInvalidHistory = errors.New("invalid conversation history")

	// ErrEmbedding indicates the embedding service failed to produce a vector.
	// Propagated to the caller, never silently replaced with an empty vector.
	ErrEmbedding = errors.New("embedding failed")

	// ErrModelMismatch indicates a chunk was embedded with a different model
	// than the collection's current one. A staleness signal requiring re-indexing.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// Transient provider errors. The ask path absorbs these into a fallback
	// answer after one retry; the ingest path returns them for the caller to retry.

	// ErrProviderUnavailable indicates a network-level provider failure.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates the provider rejected the request due to quota.
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderTimeout indicates the provider did not answer within the deadline.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrCacheUnavailable indicates the answer cache is not reachable.
	// Cache failures never fail a request; callers log and continue.
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// IsTransient reports whether err is a provider failure that may succeed on
// retry. Config and validation errors are never transient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrProviderTimeout)
}

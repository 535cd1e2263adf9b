package driving

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// Engine is the question-answering surface exposed to callers. The caller
// arrives already authorized for the collection it names; authentication and
// role checks happen outside the core.
type Engine interface {
	// IndexDocument chunks, embeds and stores the document text under the
	// collection's namespace. Idempotent per file ID: re-indexing replaces
	// any previously stored chunks for that file.
	IndexDocument(ctx context.Context, collectionID, fileID, sourceName, text string) error

	// RemoveDocument deletes all chunks for the file from the collection.
	RemoveDocument(ctx context.Context, collectionID, fileID string) error

	// Ask answers a natural-language question using retrieved context and the
	// caller-supplied conversation history. The returned answer is always
	// well-formed; transient provider failures surface as a flagged fallback.
	Ask(ctx context.Context, req AskRequest) (*domain.Answer, error)
}

// AskRequest carries one question against a collection.
type AskRequest struct {
	// CollectionID names the tenant to query.
	CollectionID string

	// Question is the natural-language query.
	Question string

	// SessionID identifies the client-held conversation, if any.
	// The core is stateless between calls; the ID is used for logging only.
	SessionID string

	// History is the caller-supplied, already-ordered conversation so far.
	// The core preserves this order through windowing.
	History []domain.Turn

	// TopK is the number of chunks to retrieve. Zero means the default (5).
	TopK int
}

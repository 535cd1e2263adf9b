package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure Engine implements the interface.
var _ driving.Engine = (*Engine)(nil)

// DefaultTopK is the number of chunks retrieved when the caller does not pick one.
const DefaultTopK = 5

// DefaultCacheTTL bounds how long a memoized answer is served.
const DefaultCacheTTL = 24 * time.Hour

// Engine is the facade over the ask and ingestion pipelines. It is stateless
// between calls: conversation history arrives from the caller on every
// request, and per-request tenant configuration is resolved exactly once.
type Engine struct {
	registry  driven.CollectionRegistry
	ingest    *IngestService
	retriever *Retriever
	assembler *Assembler
	generator *Generator

	// cache is optional; nil means every lookup is a miss.
	cache    driven.AnswerCache
	cacheTTL time.Duration
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithCache enables answer memoization with the given TTL.
// A non-positive TTL falls back to DefaultCacheTTL.
func WithCache(cache driven.AnswerCache, ttl time.Duration) EngineOption {
	return func(e *Engine) {
		e.cache = cache
		if ttl > 0 {
			e.cacheTTL = ttl
		}
	}
}

// NewEngine creates the engine facade.
func NewEngine(
	registry driven.CollectionRegistry,
	ingest *IngestService,
	retriever *Retriever,
	assembler *Assembler,
	generator *Generator,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		registry:  registry,
		ingest:    ingest,
		retriever: retriever,
		assembler: assembler,
		generator: generator,
		cacheTTL:  DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IndexDocument implements driving.Engine.
func (e *Engine) IndexDocument(ctx context.Context, collectionID, fileID, sourceName, text string) error {
	return e.ingest.IndexDocument(ctx, collectionID, fileID, sourceName, text)
}

// RemoveDocument implements driving.Engine.
func (e *Engine) RemoveDocument(ctx context.Context, collectionID, fileID string) error {
	return e.ingest.RemoveDocument(ctx, collectionID, fileID)
}

// Ask implements driving.Engine.
//
// The request walks PENDING, EMBEDDING, RETRIEVING, ASSEMBLING, GENERATING
// and terminates in SUCCEEDED, FALLBACK or FAILED. Only configuration and
// validation errors return an error (FAILED); every transient provider
// problem resolves to a flagged fallback answer instead. A retrieval failure
// degrades to generation with empty context, reflected in empty sources.
func (e *Engine) Ask(ctx context.Context, req driving.AskRequest) (*domain.Answer, error) {
	state := domain.StatePending
	logger.Section("Ask")
	logger.Debug("State: %s, collection: %s, session: %s, topK: %d, history: %d turns",
		state, req.CollectionID, req.SessionID, req.TopK, len(req.History))

	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrEmptyQuestion)
	}

	col, err := e.registry.Resolve(ctx, req.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("resolve collection %q: %w", req.CollectionID, err)
	}

	// A follow-up question's answer depends on prior turns, so the
	// history-agnostic cache is only consulted for history-free asks.
	normalized := NormalizeQuestion(req.Question)
	cacheable := len(nonEmptyTurns(req.History)) == 0
	if cacheable {
		if cached := e.cacheGet(ctx, req.CollectionID, normalized); cached != nil {
			logger.Info("Cache hit for collection %s", req.CollectionID)
			return cached, nil
		}
	}

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	// The retriever logs the EMBEDDING and RETRIEVING transitions itself;
	// both stages happen inside the one call.
	var degraded bool
	chunks, err := e.retriever.Retrieve(ctx, col, req.Question, topK)
	if err != nil {
		if errors.Is(err, domain.ErrModelMismatch) {
			// Config drift between the collection and the embedder is a hard
			// error; degraded retrieval would silently search garbage.
			return nil, err
		}
		// Degraded-but-functional: answer from the conversation alone rather
		// than failing outright. Empty sources make the degradation visible.
		logger.Warn("Retrieval failed, generating with empty context: %v", err)
		chunks = nil
		degraded = true
	}

	state = domain.StateAssembling
	logger.Debug("State: %s, %d chunks in context", state, len(chunks))
	prompt := e.assembler.Assemble(col, req.Question, req.History, chunks)
	sources := SourceRefs(chunks)

	state = domain.StateGenerating
	logger.Debug("State: %s, model: %s", state, col.Template.ModelName)
	answer := e.generator.Generate(ctx, prompt, col.Template, sources)

	// A degraded answer was produced without context; memoizing it would keep
	// serving it after the vector store recovers, so it is never cached.
	if cacheable && !degraded && !answer.IsFallback {
		e.cachePut(ctx, req.CollectionID, normalized, answer)
	}

	logger.Info("Answer state: %s, %d sources, fallback: %t", answer.State, len(answer.Sources), answer.IsFallback)
	return answer, nil
}

// cacheGet is a best-effort lookup: cache failures are logged, never surfaced.
func (e *Engine) cacheGet(ctx context.Context, collectionID, normalized string) *domain.Answer {
	if e.cache == nil {
		return nil
	}
	answer, ok, err := e.cache.Get(ctx, collectionID, normalized)
	if err != nil {
		logger.Warn("Cache get failed: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	return answer
}

// cachePut is best-effort: a failed write only costs a future cache miss.
func (e *Engine) cachePut(ctx context.Context, collectionID, normalized string, answer *domain.Answer) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Put(ctx, collectionID, normalized, answer, e.cacheTTL); err != nil {
		logger.Warn("Cache put failed: %v", err)
	}
}

// nonEmptyTurns filters whitespace-only turns, mirroring the assembler's
// windowing, so a history of blank turns still counts as history-free.
func nonEmptyTurns(history []domain.Turn) []domain.Turn {
	var kept []domain.Turn
	for _, t := range history {
		if !t.Empty() {
			kept = append(kept, t)
		}
	}
	return kept
}

package services

import (
	"context"
	"time"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// DefaultGenerationTimeout is the hard deadline on one LLM call.
const DefaultGenerationTimeout = 60 * time.Second

// DefaultRetryBackoff is the pause before the single retry on a transient
// provider error.
const DefaultRetryBackoff = 500 * time.Millisecond

// FallbackAnswer is the degraded answer text returned when the provider
// cannot be reached. Clearly marked, never fabricated content.
const FallbackAnswer = "Sorry, I was unable to generate an answer right now. Please try again in a moment."

// Generator invokes the LLM provider and applies the timeout, retry and
// fallback policy in one place, so the policy is testable independently of
// transport.
type Generator struct {
	llm driven.LLMService

	timeout time.Duration
	backoff time.Duration
}

// GeneratorOption configures the generator.
type GeneratorOption func(*Generator)

// WithGenerationTimeout sets the hard deadline for one LLM call.
func WithGenerationTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRetryBackoff sets the pause before the single retry.
func WithRetryBackoff(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d >= 0 {
			g.backoff = d
		}
	}
}

// NewGenerator creates a new answer generator.
func NewGenerator(llm driven.LLMService, opts ...GeneratorOption) *Generator {
	g := &Generator{
		llm:     llm,
		timeout: DefaultGenerationTimeout,
		backoff: DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends the assembled prompt to the provider and returns a
// well-formed answer. Transient provider errors are retried once with
// backoff; on exhaustion (and on non-transient provider errors, which are not
// retried) the result is a flagged fallback answer rather than an error. The
// chat UI prefers a degraded answer over a hard failure.
//
// sources are the source names of the chunks actually included in context;
// they are attached to the answer unchanged.
func (g *Generator) Generate(ctx context.Context, prompt *domain.Prompt, tpl domain.PromptTemplate, sources []string) *domain.Answer {
	messages := buildMessages(prompt)
	opts := driven.ChatOptions{
		Model:       tpl.ModelName,
		MaxTokens:   tpl.MaxTokens,
		Temperature: tpl.Temperature,
	}

	text, err := g.complete(ctx, messages, opts)
	if err != nil && domain.IsTransient(err) {
		logger.Warn("Generation failed transiently, retrying once: %v", err)
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(g.backoff):
			text, err = g.complete(ctx, messages, opts)
		}
	}

	if err != nil {
		logger.Warn("Generation failed, returning fallback: %v", err)
		return &domain.Answer{
			Text:       FallbackAnswer,
			Sources:    sources,
			IsFallback: true,
			State:      domain.StateFallback,
		}
	}

	return &domain.Answer{
		Text:    text,
		Sources: sources,
		State:   domain.StateSucceeded,
	}
}

// complete performs one provider call under the generation deadline.
func (g *Generator) complete(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.llm.Chat(ctx, messages, opts)
}

// buildMessages flattens the structured prompt into provider chat messages:
// system, then the windowed history, then the rendered user prompt.
func buildMessages(prompt *domain.Prompt) []driven.ChatMessage {
	messages := make([]driven.ChatMessage, 0, len(prompt.History)+2)
	messages = append(messages, driven.ChatMessage{Role: "system", Content: prompt.System})
	for _, turn := range prompt.History {
		messages = append(messages, driven.ChatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, driven.ChatMessage{Role: "user", Content: prompt.User})
	return messages
}

// SourceRefs derives citation references from the chunks included in context:
// source names de-duplicated in order of first appearance. Enables the caller
// to offer "download source" actions without re-querying the index.
func SourceRefs(chunks []domain.RetrievedChunk) []string {
	if len(chunks) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(chunks))
	refs := make([]string, 0, len(chunks))
	for _, rc := range chunks {
		name := rc.Chunk.SourceName
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, name)
	}
	if len(refs) == 0 {
		return nil
	}
	return refs
}

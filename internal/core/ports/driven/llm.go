package driven

import "context"

// LLMService produces chat completions.
//
// Implementations translate transport failures into the domain's transient
// error sentinels (domain.ErrProviderUnavailable, domain.ErrRateLimited,
// domain.ErrProviderTimeout) so the generator's retry policy can be defined
// once, independent of transport.
//
// Implementations may include:
//   - OpenAI (and OpenAI-compatible APIs)
//   - Ollama (local models)
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the completion text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures one completion call. Values come from the resolved
// collection's prompt template.
type ChatOptions struct {
	// Model is the completion model to use. Empty means adapter default.
	Model string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

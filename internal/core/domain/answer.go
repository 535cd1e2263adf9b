package domain

// RequestState tracks an ask request through the pipeline. Transient provider
// failures always resolve to StateFallback; StateFailed is reserved for
// configuration and validation errors.
type RequestState string

const (
	StatePending    RequestState = "PENDING"
	StateEmbedding  RequestState = "EMBEDDING"
	StateRetrieving RequestState = "RETRIEVING"
	StateAssembling RequestState = "ASSEMBLING"
	StateGenerating RequestState = "GENERATING"
	StateSucceeded  RequestState = "SUCCEEDED"
	StateFallback   RequestState = "FALLBACK"
	StateFailed     RequestState = "FAILED"
)

// Answer is the result of an ask request. It is always well-formed: when the
// provider cannot be reached the Text carries an explicit apology and
// IsFallback is set, never an empty body or a raw provider error.
type Answer struct {
	// Text is the generated (or fallback) answer.
	Text string `json:"answer"`

	// Sources lists the source filenames of the chunks that were included in
	// context, de-duplicated, in order of first appearance. Empty when the
	// answer was generated without retrieved context.
	Sources []string `json:"sources"`

	// IsFallback marks a degraded answer produced after the provider failed.
	// Distinguishable from a genuine answer about missing context.
	IsFallback bool `json:"is_fallback"`

	// State is the terminal pipeline state for this request.
	State RequestState `json:"state"`
}

// Prompt is the fully assembled, deterministic input for one LLM call.
type Prompt struct {
	// System is the system message.
	System string

	// History holds the windowed conversation turns, oldest first.
	History []Turn

	// User is the rendered user message with context and question filled in.
	User string
}

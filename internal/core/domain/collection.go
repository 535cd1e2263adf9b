package domain

// Collection is a tenant-scoped document namespace. Every chunk write and
// every query executes against exactly one vector namespace; the namespace is
// always an explicit parameter, never inferred.
type Collection struct {
	// ID is the stable collection identifier.
	ID string

	// VectorNamespace maps to a partition in the vector store.
	VectorNamespace string

	// EmbeddingModelID is the model used for all chunks and queries in this
	// collection. Queries embedded with a different model are meaningless.
	EmbeddingModelID string

	// Template is the collection's default prompt template.
	Template PromptTemplate
}

// PromptTemplate configures how retrieved context and the question are
// presented to the model.
type PromptTemplate struct {
	// SystemPrompt is sent as the system message.
	SystemPrompt string

	// UserPromptTemplate renders the user message. It may contain {query} and
	// {context} placeholders. When empty, a structural default is used that
	// clearly separates retrieved text from the live question.
	UserPromptTemplate string

	// ContextTemplate renders one retrieved chunk into text. It may contain
	// {source} and {text} placeholders. When empty, a default that includes
	// the source filename is used.
	ContextTemplate string

	// ModelName is the completion model to invoke.
	ModelName string

	// MaxTokens bounds the completion length. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// Default prompt scaffolding, used when a collection leaves template fields
// empty. The user prompt separates context from the question so the model
// does not confuse retrieved text with the live query.
const (
	DefaultSystemPrompt = "You are a helpful assistant. Answer using only the provided context. " +
		"If the context does not contain the answer, say you do not know."

	DefaultUserPromptTemplate = "Context:\n{context}\n\nQuestion: {query}"

	DefaultContextTemplate = "[source: {source}]\n{text}"
)

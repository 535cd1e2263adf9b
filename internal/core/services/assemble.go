package services

import (
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// DefaultHistoryWindow is the number of most recent conversation turns
// included in a prompt. Bounds prompt size without losing the immediate
// thread of the conversation.
const DefaultHistoryWindow = 8

// Assembler merges retrieved chunks and windowed conversation history into a
// structured prompt using the collection's template.
//
// Assembly is pure: the same (collection, question, history, chunks) input
// always produces a byte-identical prompt. No randomness, no timestamps.
type Assembler struct {
	historyWindow int
}

// AssemblerOption configures the assembler.
type AssemblerOption func(*Assembler)

// WithHistoryWindow sets how many recent turns are kept.
func WithHistoryWindow(n int) AssemblerOption {
	return func(a *Assembler) {
		if n > 0 {
			a.historyWindow = n
		}
	}
}

// NewAssembler creates a new assembler.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{historyWindow: DefaultHistoryWindow}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the prompt for one question.
//
// History is windowed to the most recent turns, oldest first; blank turns are
// dropped before windowing and roles are coerced to the closed
// {user, assistant} set. Chunks are rendered in the order given (descending
// similarity) through the collection's context template.
func (a *Assembler) Assemble(col *domain.Collection, question string, history []domain.Turn, chunks []domain.RetrievedChunk) *domain.Prompt {
	tpl := col.Template

	system := tpl.SystemPrompt
	if system == "" {
		system = domain.DefaultSystemPrompt
	}

	contextText := a.renderContext(tpl, chunks)

	userTpl := tpl.UserPromptTemplate
	if userTpl == "" {
		userTpl = domain.DefaultUserPromptTemplate
	}
	user := strings.ReplaceAll(userTpl, "{context}", contextText)
	user = strings.ReplaceAll(user, "{query}", question)

	return &domain.Prompt{
		System:  system,
		History: a.windowHistory(history),
		User:    user,
	}
}

// renderContext renders each chunk through the context template and
// concatenates them. The default template includes the source filename so
// callers can offer "download source" actions.
func (a *Assembler) renderContext(tpl domain.PromptTemplate, chunks []domain.RetrievedChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	ctxTpl := tpl.ContextTemplate
	if ctxTpl == "" {
		ctxTpl = domain.DefaultContextTemplate
	}

	rendered := make([]string, 0, len(chunks))
	for _, rc := range chunks {
		entry := strings.ReplaceAll(ctxTpl, "{source}", rc.Chunk.SourceName)
		entry = strings.ReplaceAll(entry, "{text}", rc.Chunk.Text)
		rendered = append(rendered, entry)
	}

	return strings.Join(rendered, "\n\n")
}

// windowHistory keeps the last historyWindow non-empty turns in their
// original order, with roles normalized.
func (a *Assembler) windowHistory(history []domain.Turn) []domain.Turn {
	kept := make([]domain.Turn, 0, len(history))
	for _, turn := range history {
		if turn.Empty() {
			continue
		}
		kept = append(kept, domain.Turn{
			Role:    domain.NormalizeRole(string(turn.Role)),
			Content: turn.Content,
		})
	}

	if len(kept) > a.historyWindow {
		kept = kept[len(kept)-a.historyWindow:]
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

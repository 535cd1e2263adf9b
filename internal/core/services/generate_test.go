package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

func testPrompt() *domain.Prompt {
	return &domain.Prompt{
		System: "You are a helpful assistant.",
		History: []domain.Turn{
			{Role: domain.RoleUser, Content: "earlier question"},
			{Role: domain.RoleAssistant, Content: "earlier answer"},
		},
		User: "Context:\n...\n\nQuestion: how many vacation days?",
	}
}

func TestGenerate_Success(t *testing.T) {
	llm := &mockLLM{response: "You get 25 vacation days."}
	g := NewGenerator(llm, WithRetryBackoff(0))

	answer := g.Generate(context.Background(), testPrompt(), domain.PromptTemplate{}, []string{"leave-policy.pdf"})

	require.NotNil(t, answer)
	assert.Equal(t, "You get 25 vacation days.", answer.Text)
	assert.Equal(t, []string{"leave-policy.pdf"}, answer.Sources)
	assert.False(t, answer.IsFallback)
	assert.Equal(t, domain.StateSucceeded, answer.State)
	assert.Equal(t, 1, llm.calls)
}

func TestGenerate_MessageOrder(t *testing.T) {
	llm := &mockLLM{}
	g := NewGenerator(llm)

	g.Generate(context.Background(), testPrompt(), domain.PromptTemplate{}, nil)

	require.Len(t, llm.messages, 1)
	msgs := llm.messages[0]
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "user", msgs[1].Role)
	assert.Equal(t, "assistant", msgs[2].Role)
	assert.Equal(t, "user", msgs[3].Role)
	assert.Equal(t, "Context:\n...\n\nQuestion: how many vacation days?", msgs[3].Content)
}

func TestGenerate_TemplateOptionsPassedThrough(t *testing.T) {
	llm := &mockLLM{}
	g := NewGenerator(llm)
	tpl := domain.PromptTemplate{ModelName: "gpt-4o-mini", MaxTokens: 256, Temperature: 0.3}

	g.Generate(context.Background(), testPrompt(), tpl, nil)

	require.Len(t, llm.opts, 1)
	assert.Equal(t, "gpt-4o-mini", llm.opts[0].Model)
	assert.Equal(t, 256, llm.opts[0].MaxTokens)
	assert.InDelta(t, 0.3, llm.opts[0].Temperature, 0.0001)
}

func TestGenerate_TransientErrorRetriedOnce(t *testing.T) {
	llm := &mockLLM{
		response: "recovered answer",
		errs:     []error{domain.ErrProviderUnavailable, nil},
	}
	g := NewGenerator(llm, WithRetryBackoff(time.Millisecond))

	answer := g.Generate(context.Background(), testPrompt(), domain.PromptTemplate{}, nil)

	assert.Equal(t, 2, llm.calls)
	assert.Equal(t, "recovered answer", answer.Text)
	assert.False(t, answer.IsFallback)
	assert.Equal(t, domain.StateSucceeded, answer.State)
}

func TestGenerate_TransientErrorExhaustedFallsBack(t *testing.T) {
	llm := &mockLLM{
		errs: []error{domain.ErrRateLimited, domain.ErrRateLimited},
	}
	g := NewGenerator(llm, WithRetryBackoff(time.Millisecond))

	answer := g.Generate(context.Background(), testPrompt(), domain.PromptTemplate{}, []string{"leave-policy.pdf"})

	// Exactly one retry, never more.
	assert.Equal(t, 2, llm.calls)
	assert.True(t, answer.IsFallback)
	assert.Equal(t, domain.StateFallback, answer.State)
	assert.Equal(t, FallbackAnswer, answer.Text)
	assert.Equal(t, []string{"leave-policy.pdf"}, answer.Sources)
}

func TestGenerate_NonTransientErrorNotRetried(t *testing.T) {
	llm := &mockLLM{errs: []error{errBoom}}
	g := NewGenerator(llm, WithRetryBackoff(time.Millisecond))

	answer := g.Generate(context.Background(), testPrompt(), domain.PromptTemplate{}, nil)

	assert.Equal(t, 1, llm.calls)
	assert.True(t, answer.IsFallback)
	assert.Equal(t, domain.StateFallback, answer.State)
}

func TestGenerate_ContextCancelledDuringBackoff(t *testing.T) {
	llm := &mockLLM{errs: []error{domain.ErrProviderTimeout}}
	g := NewGenerator(llm, WithRetryBackoff(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	answer := g.Generate(ctx, testPrompt(), domain.PromptTemplate{}, nil)

	// The retry never fires; the fallback is returned immediately.
	assert.Equal(t, 1, llm.calls)
	assert.True(t, answer.IsFallback)
}

func TestSourceRefs_DedupesInFirstAppearanceOrder(t *testing.T) {
	chunks := []domain.RetrievedChunk{
		retrieved("b.pdf", "one"),
		retrieved("a.pdf", "two"),
		retrieved("b.pdf", "three"),
		retrieved("c.pdf", "four"),
	}

	refs := SourceRefs(chunks)

	assert.Equal(t, []string{"b.pdf", "a.pdf", "c.pdf"}, refs)
}

func TestSourceRefs_Empty(t *testing.T) {
	assert.Nil(t, SourceRefs(nil))
	assert.Nil(t, SourceRefs([]domain.RetrievedChunk{}))
}

func TestSourceRefs_SkipsBlankNames(t *testing.T) {
	chunks := []domain.RetrievedChunk{
		retrieved("", "one"),
		retrieved("a.pdf", "two"),
	}

	assert.Equal(t, []string{"a.pdf"}, SourceRefs(chunks))
}

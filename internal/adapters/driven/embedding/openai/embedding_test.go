package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	svc, err := New(Config{})

	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestNew_Defaults(t *testing.T) {
	svc, err := New(Config{APIKey: "sk-test"})

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelID())
	assert.Equal(t, modelDimensions[DefaultModel], svc.Dimensions())
}

func TestNew_ModelDimensions(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"text-embedding-3-small", 1536},
		{"text-embedding-3-large", 3072},
		{"text-embedding-ada-002", 1536},
		{"some-unknown-model", 1536},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			svc, err := New(Config{APIKey: "sk-test", Model: tt.model})
			require.NoError(t, err)
			assert.Equal(t, tt.want, svc.Dimensions())
		})
	}
}

func TestNew_DimensionsOverride(t *testing.T) {
	svc, err := New(Config{APIKey: "sk-test", Model: "text-embedding-3-large", Dimensions: 256})

	require.NoError(t, err)
	assert.Equal(t, 256, svc.Dimensions())
}

func TestEmbedBatch_EmptyInput(t *testing.T) {
	svc, err := New(Config{APIKey: "sk-test"})
	require.NoError(t, err)

	vectors, err := svc.EmbedBatch(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestTransportError_Timeout(t *testing.T) {
	err := transportError(context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrProviderTimeout)
	assert.True(t, domain.IsTransient(err))
}

func TestTransportError_NetTimeout(t *testing.T) {
	err := transportError(&timeoutError{})
	assert.ErrorIs(t, err, domain.ErrProviderTimeout)
}

func TestTransportError_Other(t *testing.T) {
	err := transportError(errors.New("connection refused"))
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.True(t, domain.IsTransient(err))
}

// timeoutError satisfies net.Error with Timeout() == true.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

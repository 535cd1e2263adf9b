package ollama

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	svc := New(Config{})

	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.Equal(t, DefaultModel, svc.model)
}

func TestNew_CustomConfig(t *testing.T) {
	svc := New(Config{
		BaseURL: "http://ollama.internal:11434",
		Model:   "mistral",
	})

	assert.Equal(t, "http://ollama.internal:11434", svc.baseURL)
	assert.Equal(t, "mistral", svc.model)
}

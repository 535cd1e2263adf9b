package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want Role
	}{
		{"user", "user", RoleUser},
		{"user uppercase", "USER", RoleUser},
		{"user padded", "  user ", RoleUser},
		{"assistant", "assistant", RoleAssistant},
		{"bot coerced", "bot", RoleAssistant},
		{"system coerced", "system", RoleAssistant},
		{"empty coerced", "", RoleAssistant},
		{"garbage coerced", "4289!!", RoleAssistant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRole(tt.tag))
		})
	}
}

func TestTurn_Empty(t *testing.T) {
	assert.True(t, Turn{}.Empty())
	assert.True(t, Turn{Content: "   \t\n"}.Empty())
	assert.False(t, Turn{Content: "hello"}.Empty())
	assert.False(t, Turn{Content: " x "}.Empty())
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveCmd_Use(t *testing.T) {
	assert.Equal(t, "remove [collection-id] [file-id]", removeCmd.Use)
}

func TestRemoveCmd_Executes(t *testing.T) {
	engine, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"remove", "support-docs", "leave-policy.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	require.Len(t, engine.removed, 1)
	assert.Equal(t, "support-docs/leave-policy.pdf", engine.removed[0])
	assert.Contains(t, buf.String(), "Removed")
}

func TestRemoveCmd_EngineError(t *testing.T) {
	engine, cleanup := setupTestServices()
	defer cleanup()
	engine.removeErr = errMockEngine

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"remove", "support-docs", "leave-policy.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove document")
}

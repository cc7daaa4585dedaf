package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDemoCommand_InMemory(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Adding sample books...")
	assert.Contains(t, out, "Highly rated books (4.0+ stars):")
	assert.Contains(t, out, "6 x 7 = 42")
}

func TestMigrateCommand_RequiresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	_, err := execute(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestRootCommand_RejectsBrokenConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: chatty\n"), 0o600))

	_, err := execute(t, "--config", path, "demo")
	require.Error(t, err)
}

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCmd_Headless(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run",
		"--config", filepath.Join("..", "..", "configs", "flock.yaml"),
		"--ticks", "20",
		"--trace", "0",
	})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_TraceOutOfRange(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--ticks", "1", "--trace", "100000"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--trace")
}

func TestRunCmd_BadConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, cmd.Execute())
}

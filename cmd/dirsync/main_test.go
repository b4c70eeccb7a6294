package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// 🧪 TestDryRunReportsWithoutMutating runs the binary logic end to end
// against real temp directories
func TestDryRunReportsWithoutMutating(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.txt"), []byte("hi"), 0o644))

	out, err := runCommand(t, "--dry-run", srcDir, dstDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Would copy file")

	_, statErr := os.Stat(filepath.Join(dstDir, "a.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

// 🧪 TestRealRunCopies checks a non-dry-run invocation mutates the
// destination and prints the confirmation
func TestRealRunCopies(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.txt"), []byte("hi"), 0o644))

	out, err := runCommand(t, srcDir, dstDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Copied file")
	assert.Contains(t, out, "Very Nice, Borat Approves!")

	content, readErr := os.ReadFile(filepath.Join(dstDir, "a.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "hi", string(content))
}

// 🧪 TestMissingArguments checks the CLI demands both paths
func TestMissingArguments(t *testing.T) {
	_, err := runCommand(t, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source and destination are required")
}

// 🧪 TestConfigFileSuppliesPaths checks file values back the arguments
func TestConfigFileSuppliesPaths(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.txt"), []byte("hi"), 0o644))

	cfgPath := filepath.Join(t.TempDir(), ".dirsync.yaml")
	cfg := "source: " + srcDir + "\ndestination: " + dstDir + "\ndry_run: true\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, err := runCommand(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Would copy file")
}

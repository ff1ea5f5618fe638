package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("foo\nbar foo\nbaz\n"), 0o600))

	graph := filepath.Join(t.TempDir(), "pipeline.gv")

	t.Setenv("PIPEGREP_DIR", dir)
	t.Setenv("PIPEGREP_MEASURE", "true")
	t.Setenv("PIPEGREP_DRAW", graph)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(t.Context(), []string{"2", "-1", "-1", "-1", "foo"}, stdout, stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "foo\nbar foo\n***** You found 2 matches *****\n", stdout.String())
	assert.FileExists(t, graph)
}

func TestRunUsage(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(t.Context(), []string{"0", "-1", "-1", "-1", "foo"}, stdout, stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Usage: pipegrep")
}

func TestRunMissingDirectory(t *testing.T) {
	t.Setenv("PIPEGREP_DIR", filepath.Join(t.TempDir(), "missing"))

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(t.Context(), []string{"1", "-1", "-1", "-1", "foo"}, stdout, stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "unable to open directory")
}

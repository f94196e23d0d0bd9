package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScene(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timestep: 1ms\nstats_interval: 0s\n"), 0o600))
	return path
}

func TestRunWritesFramesAndClosesOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frames.jsonl")
	var stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-config", writeScene(t, dir),
		"-frames", "3",
		"-engine", "box2d",
		"-out", out,
		"-log-out", filepath.Join(dir, "run.log"),
	}, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	var indices []uint64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var frame struct {
			Index uint64 `json:"index"`
		}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &frame))
		indices = append(indices, frame.Index)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []uint64{0, 1, 2}, indices)

	logged, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logged), "simulation stopped")
}

func TestRunRejectsUnknownLogLevel(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-log-level", "verbose", "-frames", "1"}, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "log_level")
}

func TestRunRejectsUnknownEngine(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-engine", "havok"}, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "havok")
}

func TestRunMissingConfig(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "Error loading config")
}

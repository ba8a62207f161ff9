package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// small keeps every benchmark down to a few milliseconds.
const small = `
timing:
  min_size: 10
  max_size: 100
  total_iterations: 1000
  warmup_reps: 1
throughput:
  min_size: 10
  max_size: 100
  duration: 30ms
  settle: 10ms
  interval: 10ms
locality:
  min_size: 10
  max_size: 100
  total_iterations: 1000
  stable_pass: 1
stride:
  log_n: 6
  reps: 2
  passes: 2
  stable_pass: 1
  max_small_step: 3
  parallelism: 2
cells:
  n: 10
  reps: 2
  passes: 2
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(small), 0644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	for _, want := range []string{"boxed", "array", "direct-native", "heap-native", "x37", "decades"} {
		assert.Contains(t, out, want)
	}
}

func TestTiming(t *testing.T) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "timing.html")
	out, _, err := execute(t, "timing", "2", "array", "boxed", "--log-dir", dir, "--chart", chart)
	require.NoError(t, err)
	assert.Contains(t, out, "----- PASS 2 -----")
	assert.Contains(t, out, "array[     100]")

	logs, err := filepath.Glob(filepath.Join(dir, "IntListIterationTiming-*.log"))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	data, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus one row per implementation and size in the stable pass.
	assert.Equal(t, "impl asize time", lines[0])
	assert.Len(t, lines, 1+2*2)

	assert.FileExists(t, chart)
}

func TestTimingNoLog(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "timing", "1", "heap-native", "--log-dir", dir, "--no-log", "--adaptive")
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"timing", "2", "linked"},
		{"timing", "zero", "array"},
		{"throughput", "2", "1", "array"},
		{"throughput", "1", "1", "array", "x3"},
		{"locality", "0"},
	} {
		out, _, err := execute(t, args...)
		assert.ErrorIs(t, err, errUsage, "%v", args)
		assert.Contains(t, out, "Usage:", "%v", args)
	}

	_, _, err := execute(t, "timing", "2", "linked")
	assert.ErrorContains(t, err, "available: array, boxed")
}

func TestThroughput(t *testing.T) {
	out, _, err := execute(t, "throughput", "1", "2", "array", "x31")
	require.NoError(t, err)
	assert.Contains(t, out, "Running with op x31")
	assert.Contains(t, out, "[  2 threads] Average throughput")
}

func TestStrideAndCells(t *testing.T) {
	out, _, err := execute(t, "stride", "--small-steps")
	require.NoError(t, err)
	assert.Contains(t, out, "Ratio rnd/seq")
	assert.Contains(t, out, "=== PASS 2 ===")

	out, _, err = execute(t, "cells", "--passes", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "----- PASS 1 -----")
	assert.NotContains(t, out, "PASS 2")
}

func TestLocality(t *testing.T) {
	out, _, err := execute(t, "locality", "1", "--shuffle")
	require.NoError(t, err)
	assert.Contains(t, out, "MEMORY PAGES ANALYSIS")
	assert.Contains(t, out, "boxed-shuffled[      10]")
}

func TestConfigRoundTrip(t *testing.T) {
	out, _, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "total_iterations: 1000")
	assert.Contains(t, out, "duration: 30ms")
}

package stride

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	return Config{
		LogN:         10,
		Reps:         2,
		Passes:       3,
		StablePass:   2,
		SmallSteps:   true,
		MaxSmallStep: 7,
		Parallelism:  4,
		Seed:         1,
	}
}

func TestEveryTestSumsWholeArray(t *testing.T) {
	e, err := New(smallConfig())
	require.NoError(t, err)

	var want int32
	for _, v := range e.a {
		want += v
	}
	names := make([]string, 0, len(e.Tests()))
	for _, tt := range e.Tests() {
		assert.Equal(t, want, tt.Run(), tt.Name)
		names = append(names, tt.Name)
	}
	assert.Equal(t, []string{
		"rnd", "seq", "+03", "+05", "+07", "-01", "-03", "-05", "-07",
		"ss0", "sp2", "sp3", "par",
	}, names)
}

func TestOddLengthSplits(t *testing.T) {
	e, err := New(smallConfig())
	require.NoError(t, err)
	// 1024 is not divisible by 3, so split3 must pick up the tail.
	assert.Equal(t, e.simpleSum(), e.split3())
	assert.Equal(t, e.simpleSum(), parSum(e.a, 1))
}

func TestRunReportsRatio(t *testing.T) {
	cfg := smallConfig()
	cfg.SmallSteps = false
	e, err := New(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	ratio := e.Run(&out)
	assert.Greater(t, ratio, 0.0)

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "=== PASS"))
	assert.Contains(t, text, "=== DONE ===")
	assert.Contains(t, text, "Ratio rnd/seq")
	for _, tt := range e.Tests() {
		assert.Equal(t, 2, tt.Stats.Count(), tt.Name)
	}
}

func TestNewValidates(t *testing.T) {
	cfg := smallConfig()
	cfg.LogN = 40
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = smallConfig()
	cfg.Parallelism = 0
	_, err = New(cfg)
	assert.Error(t, err)
}

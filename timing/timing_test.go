package timing

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mknyszek/intlist-bench/intlist"
	"github.com/mknyszek/intlist-bench/jrand"
	"github.com/mknyszek/intlist-bench/reps"
)

func testConfig() Config {
	return Config{
		Sizes:      []int{10, 100},
		StablePass: 2,
		WarmupReps: 1,
		Reps:       &reps.Fixed{Total: 2000},
	}
}

func TestRunCollectsStableResults(t *testing.T) {
	tests, err := Tests([]string{"array", "boxed"}, 100, 1)
	require.NoError(t, err)

	var out bytes.Buffer
	d, err := New(testConfig(), &out, tests...)
	require.NoError(t, err)
	assert.Equal(t, Idle, d.Phase())

	var results []Result
	d.OnResult = func(r Result) { results = append(results, r) }
	require.NoError(t, d.Run(3))
	assert.Equal(t, Done, d.Phase())

	// 3 passes x 2 impls x 2 sizes.
	require.Len(t, results, 12)
	var stable int
	for _, r := range results {
		assert.Equal(t, r.Pass >= 2, r.Stable)
		assert.Equal(t, 2000/r.Size, r.Reps)
		assert.GreaterOrEqual(t, r.NsPerItem, 0.0)
		if r.Stable {
			stable++
		}
	}
	assert.Equal(t, 8, stable)

	for _, tt := range tests {
		for _, size := range []int{10, 100} {
			s := tt.Stats(size)
			require.NotNil(t, s)
			assert.Equal(t, 2, s.Count(), "%s[%d]", tt.Name, size)
		}
	}

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "----- PASS"))
	assert.Equal(t, 12, strings.Count(text, "ns per item"))
}

func TestScanResultIsReported(t *testing.T) {
	tests, err := Tests([]string{"direct"}, 100, 1)
	require.NoError(t, err)

	var want int32
	r := jrand.New(1)
	for i := 0; i < 100; i++ {
		want += r.Int32()
	}

	var out bytes.Buffer
	cfg := testConfig()
	cfg.Sizes = []int{100}
	d, err := New(cfg, &out, tests...)
	require.NoError(t, err)
	require.NoError(t, d.Run(1))

	assert.Equal(t, want, tests[0].Sink())
	assert.Contains(t, out.String(), fmt.Sprintf("(%d x %d)", want, 20))
}

type failingList struct{ intlist.List }

func (failingList) At(i int) (int32, error) {
	return 0, &intlist.IndexError{Index: i, Len: 0}
}

func TestMeasureFailureAborts(t *testing.T) {
	l, err := intlist.NewFilled("array", 10, 1)
	require.NoError(t, err)

	var out bytes.Buffer
	cfg := testConfig()
	cfg.Sizes = []int{10}
	d, err := New(cfg, &out, NewTest("broken", failingList{l}))
	require.NoError(t, err)

	err = d.Run(2)
	require.ErrorIs(t, err, intlist.ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "broken[10]")
	assert.Equal(t, 1, strings.Count(out.String(), "----- PASS"))
}

func TestNewValidates(t *testing.T) {
	tests, err := Tests([]string{"array"}, 10, 1)
	require.NoError(t, err)

	cfg := testConfig()
	_, err = New(cfg, &bytes.Buffer{}, tests...)
	assert.Error(t, err, "list shorter than largest size")

	cfg.Sizes = nil
	_, err = New(cfg, &bytes.Buffer{}, tests...)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Reps = nil
	_, err = New(cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestAdaptiveUsesStableMean(t *testing.T) {
	tests, err := Tests([]string{"array"}, 1000, 1)
	require.NoError(t, err)

	cfg := Config{
		Sizes:      []int{1000},
		StablePass: 1,
		Reps: reps.NewAdaptive(&reps.AdaptiveConfig{
			TargetNs: 1e6,
			Initial:  10_000,
			Max:      1_000_000,
		}),
	}
	d, err := New(cfg, &bytes.Buffer{}, tests...)
	require.NoError(t, err)

	var results []Result
	d.OnResult = func(r Result) { results = append(results, r) }
	require.NoError(t, d.Run(2))

	require.Len(t, results, 2)
	assert.Equal(t, 10, results[0].Reps)
	mean := results[0].NsPerItem
	want := cfg.Reps.Next(1000, mean, 1)
	assert.Equal(t, want, results[1].Reps)
}

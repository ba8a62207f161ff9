package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mknyszek/intlist-bench/intop"
	"github.com/mknyszek/intlist-bench/throughput"
	"github.com/mknyszek/intlist-bench/timing"
)

func TestObserveTiming(t *testing.T) {
	m := New()
	m.ObserveTiming(timing.Result{Impl: "array", Size: 1000, NsPerItem: 0.5, Stable: true})
	m.ObserveTiming(timing.Result{Impl: "array", Size: 1000, NsPerItem: 0.7, Stable: true})
	m.ObserveTiming(timing.Result{Impl: "array", Size: 1000, NsPerItem: 9, Stable: false})

	assert.Equal(t, 0.7, testutil.ToFloat64(m.nsPerElement.WithLabelValues("array", "1000", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.measurements.WithLabelValues("array", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.measurements.WithLabelValues("array", "false")))
}

func TestObserveThroughput(t *testing.T) {
	m := New()
	m.ObserveSample(throughput.Sample{Counts: []int64{3, 5}})
	m.ObserveThroughput(throughput.Result{Impl: "boxed", Op: intop.X27, Threads: 2, Size: 10, OpsPerSec: 1.5e9})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.passes.WithLabelValues("1")))
	assert.Equal(t, 1.5e9, testutil.ToFloat64(m.opsPerSec.WithLabelValues("boxed", "x27", "2", "10")))

	n, err := testutil.GatherAndCount(m.Registry(), "intbench_worker_passes")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expected := `
# HELP intbench_throughput_ops_per_second Aggregate elements read per second across workers
# TYPE intbench_throughput_ops_per_second gauge
intbench_throughput_ops_per_second{impl="boxed",op="x27",size="10",threads="2"} 1.5e+09
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "intbench_throughput_ops_per_second"))
}

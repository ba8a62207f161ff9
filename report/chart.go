package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mknyszek/intlist-bench/stats"
	"github.com/mknyszek/intlist-bench/throughput"
	"github.com/mknyszek/intlist-bench/timing"
)

// WriteFile renders a chart into a new file at path.
func WriteFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

func newLine(title, subtitle, yName string, sizes []int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "size", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	x := make([]string, len(sizes))
	for i, s := range sizes {
		x[i] = strconv.Itoa(s)
	}
	line.SetXAxis(x)
	return line
}

// TimingChart plots the mean stabilized ns-per-element of every
// implementation against size.
func TimingChart(w io.Writer, results []timing.Result) error {
	var impls []string
	var sizes []int
	means := make(map[string]map[int]*stats.Running)
	seenSize := make(map[int]bool)
	for _, r := range results {
		if !r.Stable {
			continue
		}
		m, ok := means[r.Impl]
		if !ok {
			m = make(map[int]*stats.Running)
			means[r.Impl] = m
			impls = append(impls, r.Impl)
		}
		s := m[r.Size]
		if s == nil {
			s = new(stats.Running)
			m[r.Size] = s
		}
		s.Add(r.NsPerItem)
		if !seenSize[r.Size] {
			seenSize[r.Size] = true
			sizes = append(sizes, r.Size)
		}
	}
	if len(impls) == 0 {
		return fmt.Errorf("no stabilized results to chart")
	}
	sort.Ints(sizes)

	line := newLine("Iteration cost", "mean of stabilized passes", "ns per element", sizes)
	for _, impl := range impls {
		data := make([]opts.LineData, len(sizes))
		for i, size := range sizes {
			if s := means[impl][size]; s != nil {
				data[i] = opts.LineData{Value: s.Mean()}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(impl, data)
	}
	return line.Render(w)
}

// ThroughputChart plots aggregate throughput against size, one series per
// thread count.
func ThroughputChart(w io.Writer, results []throughput.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no throughput results to chart")
	}
	var threads, sizes []int
	ops := make(map[int]map[int]float64)
	seenSize := make(map[int]bool)
	for _, r := range results {
		m, ok := ops[r.Threads]
		if !ok {
			m = make(map[int]float64)
			ops[r.Threads] = m
			threads = append(threads, r.Threads)
		}
		m[r.Size] = r.OpsPerSec / 1e9
		if !seenSize[r.Size] {
			seenSize[r.Size] = true
			sizes = append(sizes, r.Size)
		}
	}
	sort.Ints(sizes)

	first := results[0]
	line := newLine("Throughput", fmt.Sprintf("%s, op %v", first.Impl, first.Op), "10^9 ops/sec", sizes)
	for _, n := range threads {
		data := make([]opts.LineData, len(sizes))
		for i, size := range sizes {
			if v, ok := ops[n][size]; ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(fmt.Sprintf("%d threads", n), data)
	}
	return line.Render(w)
}

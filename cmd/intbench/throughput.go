package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mknyszek/intlist-bench/intop"
	"github.com/mknyszek/intlist-bench/report"
	"github.com/mknyszek/intlist-bench/throughput"
)

func (a *app) throughputCmd() *cobra.Command {
	var (
		duration, settle, interval time.Duration
		sweep, chart               string
	)
	cmd := &cobra.Command{
		Use:   "throughput <minThreads> <maxThreads> <impl> [<op>]",
		Short: "Measure aggregate scan throughput as goroutines are added",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			min, err := parseCount("minThreads", args[0])
			if err != nil {
				return err
			}
			max, err := parseCount("maxThreads", args[1])
			if err != nil {
				return err
			}
			if max < min {
				return usageErrorf("maxThreads %d is below minThreads %d", max, min)
			}
			if err := checkImpls(args[2:3]); err != nil {
				return err
			}
			op := intop.ID
			if len(args) == 4 {
				if op, err = intop.Parse(args[3]); err != nil {
					return usageErrorf("%v (available: %s)", err, strings.Join(intop.Ops(), ", "))
				}
			}
			cmd.SilenceUsage = true

			tc := a.cfg.Throughput
			flags := cmd.Flags()
			if flags.Changed("duration") {
				tc.Duration = duration
			}
			if flags.Changed("settle") {
				tc.Settle = settle
			}
			if flags.Changed("interval") {
				tc.Interval = interval
			}
			if flags.Changed("sweep") {
				tc.Sweep = sweep
			}
			if flags.Changed("chart") {
				tc.Chart = chart
			}
			sizes, err := tc.Resolve()
			if err != nil {
				return err
			}
			if max > runtime.GOMAXPROCS(0) {
				a.log.Warn("more workers than GOMAXPROCS", "workers", max, "gomaxprocs", runtime.GOMAXPROCS(0))
			}

			a.log.Info("filling lists", "impl", args[2], "workers", max, "elements", sizes[len(sizes)-1])
			r, err := throughput.NewRunner(throughput.Config{
				MinThreads: min,
				MaxThreads: max,
				Impl:       args[2],
				Op:         op,
				Sizes:      sizes,
				Seed:       a.cfg.Seed,
				Duration:   tc.Duration,
				Settle:     tc.Settle,
				Interval:   tc.Interval,
				Progress:   isTerminal(a.out),
				OnSample:   a.metrics.ObserveSample,
				OnResult:   a.metrics.ObserveThroughput,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Running with op %v\n", op)
			results, err := r.Run(a.out)
			if err != nil {
				return err
			}

			if tc.Chart != "" {
				if err := report.WriteFile(tc.Chart, func(w io.Writer) error {
					return report.ThroughputChart(w, results)
				}); err != nil {
					return err
				}
				a.log.Info("wrote chart", "path", tc.Chart)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.DurationVar(&duration, "duration", 0, "measurement window per size")
	f.DurationVar(&settle, "settle", 0, "initial part of the window that is discarded")
	f.DurationVar(&interval, "interval", 0, "counter sampling interval")
	f.StringVar(&sweep, "sweep", "", "named size sweep (see 'intbench list')")
	f.StringVar(&chart, "chart", "", "write an HTML chart of the results to this path")
	return cmd
}

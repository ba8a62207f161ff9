package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mknyszek/intlist-bench/config"
	"github.com/mknyszek/intlist-bench/report"
	"github.com/mknyszek/intlist-bench/timing"
)

func (a *app) timingCmd() *cobra.Command {
	var (
		adaptive bool
		sweep    string
		logDir   string
		noLog    bool
		chart    string
	)
	cmd := &cobra.Command{
		Use:   "timing <passes> <impl> [<impl> ...]",
		Short: "Time single-threaded scans of each implementation across sizes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			passes, err := parseCount("passes", args[0])
			if err != nil {
				return err
			}
			impls := args[1:]
			if err := checkImpls(impls); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			tc := a.cfg.Timing
			flags := cmd.Flags()
			if flags.Changed("adaptive") {
				tc.Adaptive = adaptive
			}
			if flags.Changed("sweep") {
				tc.Sweep = sweep
			}
			if flags.Changed("log-dir") {
				tc.LogDir = logDir
			}
			if noLog {
				tc.LogDir = ""
			}
			if flags.Changed("chart") {
				tc.Chart = chart
			}
			return a.runTiming(tc, passes, impls)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&adaptive, "adaptive", false, "size repetitions to a target time once a mean is known")
	f.StringVar(&sweep, "sweep", "", "named size sweep (see 'intbench list')")
	f.StringVar(&logDir, "log-dir", "", "directory receiving the result log")
	f.BoolVar(&noLog, "no-log", false, "do not write a result log")
	f.StringVar(&chart, "chart", "", "write an HTML chart of the stabilized results to this path")
	return cmd
}

func (a *app) runTiming(tc config.TimingConfig, passes int, impls []string) error {
	sizes, err := tc.Resolve()
	if err != nil {
		return err
	}
	a.log.Info("filling lists", "impls", impls, "elements", sizes[len(sizes)-1])
	tests, err := timing.Tests(impls, sizes[len(sizes)-1], a.cfg.Seed)
	if err != nil {
		return err
	}
	d, err := timing.New(timing.Config{
		Sizes:      sizes,
		StablePass: tc.StablePass,
		WarmupReps: tc.WarmupReps,
		Reps:       repsController(tc.Adaptive, tc.TotalIterations, tc.TargetTime),
	}, a.out, tests...)
	if err != nil {
		return err
	}

	var log *report.Log
	if tc.LogDir != "" {
		var path string
		log, path, err = report.CreateLog(tc.LogDir, time.Now())
		if err != nil {
			return err
		}
		a.log.Info("writing results", "path", path)
	}

	var results []timing.Result
	d.OnResult = func(r timing.Result) {
		if log != nil {
			log.Record(r)
		}
		a.metrics.ObserveTiming(r)
		results = append(results, r)
	}
	a.log.Debug("starting timing run", "passes", passes, "sizes", sizes, "adaptive", tc.Adaptive)
	err = d.Run(passes)
	if log != nil {
		if cerr := log.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	if tc.Chart != "" {
		if err := report.WriteFile(tc.Chart, func(w io.Writer) error {
			return report.TimingChart(w, results)
		}); err != nil {
			return err
		}
		a.log.Info("wrote chart", "path", tc.Chart)
	}
	return nil
}

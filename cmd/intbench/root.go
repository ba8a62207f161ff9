package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mknyszek/intlist-bench/config"
	"github.com/mknyszek/intlist-bench/intlist"
	"github.com/mknyszek/intlist-bench/metrics"
	"github.com/mknyszek/intlist-bench/reps"
)

var errUsage = errors.New("usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// app is the state shared by every subcommand. It is populated by the
// root command before any subcommand runs.
type app struct {
	out, errOut io.Writer

	cfgPath     string
	metricsAddr string
	verbose     bool

	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "intbench",
		Short:         "Benchmark iteration over int32 list layouts",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML file with benchmark parameters (defaults used otherwise)")
	pf.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.timingCmd(),
		a.throughputCmd(),
		a.strideCmd(),
		a.cellsCmd(),
		a.localityCmd(),
		a.listCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	a.cfg = config.Default()
	if a.cfgPath != "" {
		cfg, err := config.Load(a.cfgPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.log.Debug("loaded config", "path", a.cfgPath)
	}

	a.metrics = metrics.New()
	if a.metricsAddr != "" {
		if err := a.metrics.Serve(cmd.Context(), a.metricsAddr, a.log); err != nil {
			return fmt.Errorf("starting metrics server: %w", err)
		}
	}
	return nil
}

// isTerminal reports whether w is attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func parseCount(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, usageErrorf("%s must be a positive integer, got %q", what, s)
	}
	return n, nil
}

func checkImpls(names []string) error {
	known := intlist.Lists()
	for _, name := range names {
		found := false
		for _, k := range known {
			if k == name {
				found = true
				break
			}
		}
		if !found {
			return usageErrorf("unknown list implementation %q (available: %s)", name, strings.Join(known, ", "))
		}
	}
	return nil
}

func repsController(adaptive bool, total int, target time.Duration) reps.Controller {
	if adaptive {
		return reps.NewAdaptive(&reps.AdaptiveConfig{
			TargetNs: float64(target.Nanoseconds()),
			Initial:  total,
		})
	}
	return &reps.Fixed{Total: total}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mknyszek/intlist-bench/cell"
	"github.com/mknyszek/intlist-bench/intlist"
	"github.com/mknyszek/intlist-bench/locality"
	"github.com/mknyszek/intlist-bench/stride"
	"github.com/mknyszek/intlist-bench/timing"
)

func (a *app) strideCmd() *cobra.Command {
	var (
		smallSteps bool
		passes     int
	)
	cmd := &cobra.Command{
		Use:   "stride",
		Short: "Compare sequential and random access over one array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sc := a.cfg.Stride
			if cmd.Flags().Changed("small-steps") {
				sc.SmallSteps = smallSteps
			}
			if cmd.Flags().Changed("passes") {
				sc.Passes = passes
			}
			a.log.Info("filling array", "elements", 1<<sc.LogN)
			e, err := stride.New(sc)
			if err != nil {
				return err
			}
			ratio := e.Run(a.out)
			a.log.Debug("stride run complete", "ratio", ratio)
			return nil
		},
	}
	cmd.Flags().BoolVar(&smallSteps, "small-steps", false, "add every odd stride up to the configured maximum")
	cmd.Flags().IntVar(&passes, "passes", 0, "number of passes")
	return cmd
}

func (a *app) cellsCmd() *cobra.Command {
	var passes int
	cmd := &cobra.Command{
		Use:   "cells",
		Short: "Sum values held in copy-on-access containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cc := a.cfg.Cells
			if cmd.Flags().Changed("passes") {
				cc.Passes = passes
			}
			cell.New(cc).Run(a.out)
			return nil
		},
	}
	cmd.Flags().IntVar(&passes, "passes", 0, "number of passes")
	return cmd
}

func (a *app) localityCmd() *cobra.Command {
	var shuffle bool
	cmd := &cobra.Command{
		Use:   "locality <passes>",
		Short: "Estimate pages touched by boxed elements, then time scans over them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			passes, err := parseCount("passes", args[0])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			lc := a.cfg.Locality
			if cmd.Flags().Changed("shuffle") {
				lc.Shuffle = shuffle
			}
			sizes, err := lc.Resolve()
			if err != nil {
				return err
			}
			l, err := intlist.NewFilled("boxed", sizes[len(sizes)-1], a.cfg.Seed)
			if err != nil {
				return err
			}
			boxed := l.(*intlist.Boxed)
			name := "boxed"
			if lc.Shuffle {
				locality.Shuffle(boxed, a.cfg.Seed)
				name = "boxed-shuffled"
			}

			table, err := locality.Analyze(boxed, sizes, lc.MinPageShift, lc.MaxPageShift)
			if err != nil {
				return err
			}
			table.Print(a.out)
			fmt.Fprintln(a.out)

			d, err := timing.New(timing.Config{
				Sizes:      sizes,
				StablePass: lc.StablePass,
				WarmupReps: a.cfg.Timing.WarmupReps,
				Reps:       repsController(false, lc.TotalIterations, 0),
			}, a.out, timing.NewTest(name, boxed))
			if err != nil {
				return err
			}
			d.OnResult = a.metrics.ObserveTiming
			return d.Run(passes)
		},
	}
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "randomly permute the boxes before measuring")
	return cmd
}

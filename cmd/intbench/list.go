package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mknyszek/intlist-bench/config"
	"github.com/mknyszek/intlist-bench/intlist"
	"github.com/mknyszek/intlist-bench/intop"
	"github.com/mknyszek/intlist-bench/sweep"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List implementations, element ops and size sweeps",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(a.out, "lists:")
			for _, name := range intlist.Lists() {
				fmt.Fprintf(a.out, "  %-14s %s\n", name, intlist.Describe(name))
			}
			fmt.Fprintf(a.out, "ops:\n  %s\n", strings.Join(intop.Ops(), " "))
			fmt.Fprintf(a.out, "sweeps:\n  %s\n", strings.Join(sweep.Generators(), " "))
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				return config.Write(args[0], a.cfg)
			}
			return config.Encode(a.out, a.cfg)
		},
	}
}

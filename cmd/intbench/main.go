// Command intbench measures how the layout of an int32 list affects the
// cost of iterating over it, single-threaded and across goroutines.
package main

import (
	"context"
	"fmt"
	"os"
)

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// SPDX-License-Identifier: MIT

// Command ivsolve solves, paves and minimizes the built-in interval
// problems. Run "ivsolve --help" for the command list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/ivlath/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ivsolve:", err)
		os.Exit(cli.GetExitCode(err))
	}
}

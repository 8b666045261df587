package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/mototransporte/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	streams := cli.StdStreams()
	if err := cli.Run(ctx, streams, os.Args[1:]); err != nil {
		fmt.Fprintln(streams.Err, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// Command tilepath runs turn-sliced A* requests on ASCII tile maps.
//
// Usage:
//
//	tilepath find --map level.txt [--from x,y] [--to x,y]
//	tilepath batch --config agents.yaml [--parallel]
//	tilepath verify [--seeds 100] [--density 0.3]
//	tilepath inspect --map level.txt
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "tilepath:", err)
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/malusev998/xrate/cli/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx, build)
	cancel()

	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/deskset/cmd/deskset"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := deskset.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		deskset.RenderError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

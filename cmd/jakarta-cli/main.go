// File: cmd/jakarta-cli/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/jakarta-cli/cmd"
	"github.com/xkilldash9x/jakarta-cli/internal/observability"
)

// main is the entry point of the application.
func main() {
	// Listen for interrupt signals so a running verification can terminate
	// its child process before we exit.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(0) // graceful shutdown
		}
		os.Exit(1)
	}
}

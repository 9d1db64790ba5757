package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"
)

// stopTimeout bounds graceful shutdown so in-flight checkout requests can
// drain without blocking termination forever.
const stopTimeout = 30 * time.Second

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start application: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop application: %v\n", err)
		os.Exit(1)
	}
}

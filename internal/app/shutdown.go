package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hltv-parser/internal/observability"
)

// GracefulShutdown returns a context cancelled on SIGINT/SIGTERM or, when
// maxRun is positive, after maxRun.
func GracefulShutdown(logger *observability.Logger, maxRun time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	if maxRun > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, maxRun)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

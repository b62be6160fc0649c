package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// waitForShutdown returns a channel closed when an interrupt or terminate
// signal is received or ctx is done.
func waitForShutdown(ctx context.Context) <-chan struct{} {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		<-sigCtx.Done()
		stop()
		close(done)
	}()
	return done
}

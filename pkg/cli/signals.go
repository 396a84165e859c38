package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context derived from parent that is canceled
// on SIGINT or SIGTERM. A second signal exits the process immediately.
// Call stop to release the signal subscription.
func SetupSignalHandler(parent context.Context) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-done:
			return
		}

		select {
		case <-sigChan:
			os.Exit(ExitFailed)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		close(done)
		cancel()
	}
}

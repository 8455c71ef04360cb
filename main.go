package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YLivay/hexi/log"
)

func main() {
	ctx, cancelCtx := context.WithCancel(context.Background())
	cleanupOsSignals := setupOsSignals(ctx, cancelCtx)

	err := newRootCommand().ExecuteContext(ctx)
	cleanupOsSignals()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "hexi:", err)
		os.Exit(1)
	}
}

func setupOsSignals(ctx context.Context, cancelCtx context.CancelFunc) (cleanup func()) {
	// Catch ctrl+c and make it close the context instead of immediately
	// exiting, so open documents get unmapped.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	// Receiving SIGPIPE here turns writes to a closed pipe into EPIPE errors,
	// which the printer treats as the end of the dump.
	pipeChan := make(chan os.Signal, 1)
	signal.Notify(pipeChan, syscall.SIGPIPE)

	cleanup = func() {
		signal.Stop(signalChan)
		signal.Stop(pipeChan)
		cancelCtx()
	}

	go func() {
		for {
			select {
			case sig := <-signalChan:
				log.Println("Received", sig)
				cancelCtx()
				return
			case <-pipeChan:
				log.Println("Output pipe closed")
			case <-ctx.Done():
				return
			}
		}
	}()

	return cleanup
}

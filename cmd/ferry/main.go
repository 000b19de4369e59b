package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"ferry/internal/config"
)

func main() {
	if warning := configureLogging(); warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}

	cfg, found, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrCorrupt) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		// A corrupt config file is recoverable: fall back to defaults and
		// let the next client command re-prompt.
		fmt.Fprintln(os.Stderr, "warning: config file is corrupt and will be rewritten on next setup")
		cfg = config.Default()
		found = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(cfg, found)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/dpsim/internal/gui"
	"github.com/san-kum/dpsim/internal/logging"
	"github.com/san-kum/dpsim/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	logger := logging.Discard()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = newLogger(f)
	}

	return viz.Run(cfg, logger)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return gui.Run(ctx, cfg, newLogger(os.Stderr))
}

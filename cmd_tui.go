// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/resiliencere/leadsync/internal/tui"
	"github.com/spf13/cobra"
)

var tuiLogFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the listing page and chaos panel in the terminal",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file (the screen is taken by the UI)")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var out io.Writer = io.Discard
	if tuiLogFile != "" {
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := cfg.NewLogger(out)
	slog.SetDefault(logger)

	demo, cleanup, err := newDemo(cfg, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(cmd.Context(), tui.Options{
		Demo:         demo,
		PollInterval: cfg.PollInterval,
		Logger:       logger,
	})
}

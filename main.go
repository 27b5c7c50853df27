// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/resiliencere/leadsync/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	queueDB    string
	locale     string
	keepSync   bool
)

var rootCmd = &cobra.Command{
	Use:   "leadsync",
	Short: "Chaos demo for an offline-first real estate listing page",
	Long: `leadsync simulates a listing page whose network can be switched between
ONLINE, DEGRADED and OFFLINE. Leads captured while the network is down are kept
locally and synced to the CRM once the connection returns.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "log format (text, json)")
	flags.StringVar(&queueDB, "queue-db", "", "SQLite file for the local lead queue (memory when empty)")
	flags.StringVar(&locale, "locale", "", "notification language (en, vi)")
	flags.BoolVar(&keepSync, "keep-pending-sync", false, "let an armed sync fire even if the network drops again")

	rootCmd.AddCommand(serveCmd, tuiCmd, simulateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// loadConfig layers flags over the config file over the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("queue-db") {
		cfg.QueueDB = queueDB
	}
	if flags.Changed("locale") {
		cfg.Locale = locale
	}
	if flags.Changed("keep-pending-sync") {
		cfg.CancelPendingSync = !keepSync
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

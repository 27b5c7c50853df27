// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/resiliencere/leadsync/chaos"
	"github.com/resiliencere/leadsync/metrics"
	"github.com/resiliencere/leadsync/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	serveAddr       string
	serveLogRequest bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the listing page state and chaos panel over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides http_addr)")
	serveCmd.Flags().BoolVar(&serveLogRequest, "log-requests", false, "log every HTTP request")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTPAddr = serveAddr
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	registry := metrics.NewRegistry()
	demo, cleanup, err := newDemo(cfg, registry)
	if err != nil {
		return err
	}
	defer cleanup()

	components, err := server.SetupServer(&server.ServerConfig{
		Demo:                 demo,
		Metrics:              registry,
		Logger:               logger,
		Addr:                 cfg.HTTPAddr,
		EnableRequestLogging: serveLogRequest,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return components.Serve(ctx)
	})
	g.Go(func() error {
		chaos.PollPending(ctx, cfg.PollInterval, demo.PendingCount, func(n int) {
			logger.Debug("Pending leads", "count", n)
		}, logger)
		return nil
	})
	g.Go(func() error {
		if _, err := demo.LoadProperty(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("Initial property fetch failed", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("👋 leadsync stopped")
	return nil
}

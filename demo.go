// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/resiliencere/leadsync/backend"
	"github.com/resiliencere/leadsync/chaos"
	"github.com/resiliencere/leadsync/config"
	"github.com/resiliencere/leadsync/leadstore"
)

// newDemo wires the mock backend, the lead queue and the recorder into a Demo.
// The returned cleanup closes the demo and its store.
func newDemo(cfg *config.Config, recorder chaos.Recorder) (*chaos.Demo, func(), error) {
	logger := cfg.Logger

	var queue chaos.LeadQueue
	var store *leadstore.Store
	if cfg.QueueDB != "" {
		s, err := leadstore.Open(cfg.QueueDB, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open lead queue: %w", err)
		}
		store = s
		queue = s
		logger.Info("🗄️ Lead queue persisted", "path", cfg.QueueDB)
	}

	mock := backend.NewMock(&backend.MockConfig{
		Latency:         cfg.FetchLatency,
		DegradedLatency: cfg.DegradedExtraLatency,
		Logger:          logger,
	})

	demo, err := chaos.NewDemo(&chaos.DemoConfig{
		Backend:         mock,
		Queue:           queue,
		Recorder:        recorder,
		Logger:          logger,
		InitialStatus:   cfg.Status(),
		SyncDelay:       cfg.SyncDelay,
		KeepPendingSync: !cfg.CancelPendingSync,
		Locale:          cfg.Locale,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		demo.Close()
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close lead queue", "error", err)
			}
		}
	}
	return demo, cleanup, nil
}

// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import (
	"context"
	"log/slog"
	"time"
)

// PollPending reads the pending lead count immediately and then every interval,
// passing each successful read to onCount. It returns when ctx is cancelled.
func PollPending(ctx context.Context, interval time.Duration, read func(context.Context) (int, error), onCount func(int), logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	logger.Debug("🔁 Pending poll started", "interval", interval)
	defer logger.Debug("🔁 Pending poll stopped")

	runOnce := func() {
		n, err := read(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("Failed to read pending leads", "error", err)
			}
			return
		}
		onCount(n)
	}

	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

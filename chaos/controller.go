// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import "sync"

// Controller holds the simulated connection status and the region derived from it.
type Controller struct {
	mu     sync.RWMutex
	status ConnectionStatus
	region ServerRegion
}

// NewController starts in the given status (ONLINE when zero).
func NewController(initial ConnectionStatus) *Controller {
	if initial.IsZero() {
		initial = StatusOnline
	}
	return &Controller{
		status: initial,
		region: RegionFor(initial),
	}
}

// SetStatus records the new status, recomputes the region and returns the previous status.
// The zero status is ignored.
func (c *Controller) SetStatus(s ConnectionStatus) ConnectionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.status
	if s.IsZero() {
		return prev
	}
	c.status = s
	c.region = RegionFor(s)
	return prev
}

func (c *Controller) Status() ConnectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Controller) Region() ServerRegion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.region
}

// Package backend simulates the listing backend: property details, the CRM that
// receives leads, and how both react to the simulated network condition.
//
// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0
package backend

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/resiliencere/leadsync/chaos"
)

var (
	// ErrNetworkUnavailable is returned while the simulated network is OFFLINE.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrServerError is a forced origin failure (see FailNextFetch).
	ErrServerError = errors.New("simulated server error")
)

// MockConfig tunes the simulated backend.
type MockConfig struct {
	Property        *chaos.Property // defaults to DefaultProperty()
	Latency         time.Duration   // base response time
	DegradedLatency time.Duration   // added while DEGRADED
	Logger          *slog.Logger
}

// DefaultMockConfig returns the latencies used by the demo shells.
func DefaultMockConfig() *MockConfig {
	return &MockConfig{
		Latency:         300 * time.Millisecond,
		DegradedLatency: 1200 * time.Millisecond,
	}
}

// Mock is an in-process chaos.Backend.
type Mock struct {
	property        chaos.Property
	latency         time.Duration
	degradedLatency time.Duration
	logger          *slog.Logger

	mu        sync.Mutex
	condition chaos.ConnectionStatus
	cache     *chaos.Property
	crm       []chaos.Lead
	failNext  bool
}

var _ chaos.Backend = (*Mock)(nil)

func NewMock(cfg *MockConfig) *Mock {
	if cfg == nil {
		cfg = DefaultMockConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	property := DefaultProperty()
	if cfg.Property != nil {
		property = *cfg.Property
	}
	return &Mock{
		property:        property,
		latency:         cfg.Latency,
		degradedLatency: cfg.DegradedLatency,
		logger:          logger,
		condition:       chaos.StatusOnline,
	}
}

func (m *Mock) SetNetworkCondition(s chaos.ConnectionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.condition = s
}

// FailNextFetch makes the next origin fetch fail with ErrServerError.
func (m *Mock) FailNextFetch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = true
}

// FetchPropertyDetails returns the listing after the simulated latency. While OFFLINE
// it serves the edge-cached copy from an earlier fetch, or fails when there is none.
func (m *Mock) FetchPropertyDetails(ctx context.Context) (*chaos.Property, error) {
	m.mu.Lock()
	condition := m.condition
	m.mu.Unlock()

	if condition == chaos.StatusOffline {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.cache == nil {
			return nil, ErrNetworkUnavailable
		}
		cached := *m.cache
		cached.Cached = true
		m.logger.Debug("Serving property from edge cache", "id", cached.ID)
		return &cached, nil
	}

	delay := m.latency
	if condition == chaos.StatusDegraded {
		delay += m.degradedLatency
	}
	if err := sleepWithContext(ctx, delay); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return nil, ErrServerError
	}
	p := m.property
	p.Features = append([]string(nil), m.property.Features...)
	m.cache = &p

	out := p
	return &out, nil
}

// SubmitLead records a lead in the CRM; it fails while OFFLINE.
func (m *Mock) SubmitLead(ctx context.Context, lead chaos.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.condition == chaos.StatusOffline {
		return ErrNetworkUnavailable
	}
	m.crm = append(m.crm, lead)
	m.logger.Debug("CRM received lead", "id", lead.ID)
	return nil
}

// SyncLeads accepts flushed leads into the CRM. It never fails.
func (m *Mock) SyncLeads(ctx context.Context, leads []chaos.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.crm = append(m.crm, leads...)
	m.logger.Info("CRM received synced leads", "count", len(leads))
	return nil
}

// CRMLeads lists every lead the CRM has received.
func (m *Mock) CRMLeads() []chaos.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]chaos.Lead, len(m.crm))
	copy(out, m.crm)
	return out
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

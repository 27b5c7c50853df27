// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import (
	"context"
	"sync"
)

// LeadQueue is the client-held buffer of leads accepted while not fully online.
// It is unbounded and keeps duplicates; List returns insertion order.
type LeadQueue interface {
	Enqueue(ctx context.Context, lead Lead) error
	List(ctx context.Context) ([]Lead, error)
	Len(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// MemoryQueue is an in-process LeadQueue. Its methods never fail.
type MemoryQueue struct {
	mu    sync.Mutex
	leads []Lead
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Enqueue(_ context.Context, lead Lead) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.leads = append(q.leads, lead)
	return nil
}

// List returns a copy of the queued leads.
func (q *MemoryQueue) List(_ context.Context) ([]Lead, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Lead, len(q.leads))
	copy(out, q.leads)
	return out, nil
}

func (q *MemoryQueue) Len(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.leads), nil
}

func (q *MemoryQueue) Clear(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.leads = nil
	return nil
}

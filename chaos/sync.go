// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import (
	"sync"
	"time"
)

// SyncState is the state of the delayed sync trigger.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncPending
)

func (s SyncState) String() string {
	if s == SyncPending {
		return "PENDING-SYNC"
	}
	return "IDLE"
}

// SyncTrigger is a one-shot delayed action armed on every switch to ONLINE.
// onFire runs on the scheduler's goroutine without the trigger lock held.
type SyncTrigger struct {
	scheduler Scheduler
	delay     time.Duration
	onFire    func()

	mu     sync.Mutex
	state  SyncState
	gen    uint64
	cancel CancelFunc
}

func NewSyncTrigger(scheduler Scheduler, delay time.Duration, onFire func()) *SyncTrigger {
	if scheduler == nil {
		scheduler = SystemScheduler()
	}
	return &SyncTrigger{
		scheduler: scheduler,
		delay:     delay,
		onFire:    onFire,
	}
}

// Arm moves the trigger to PENDING-SYNC. Arming while pending keeps the
// scheduled task and its original deadline, and reports false.
func (t *SyncTrigger) Arm() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == SyncPending {
		return false
	}
	t.gen++
	gen := t.gen
	t.state = SyncPending
	t.cancel = t.scheduler.AfterFunc(t.delay, func() { t.fire(gen) })
	return true
}

// Cancel drops a pending task and reports whether one was pending.
func (t *SyncTrigger) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != SyncPending {
		return false
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	t.state = SyncIdle
	t.cancel = nil
	return true
}

func (t *SyncTrigger) State() SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *SyncTrigger) Delay() time.Duration { return t.delay }

func (t *SyncTrigger) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.state != SyncPending {
		t.mu.Unlock()
		return
	}
	t.state = SyncIdle
	t.cancel = nil
	t.mu.Unlock()

	if t.onFire != nil {
		t.onFire()
	}
}

// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import (
	"sort"
	"sync"
	"time"
)

// CancelFunc stops a scheduled task. It reports whether the call prevented the task from running.
type CancelFunc func() bool

// Scheduler runs one-shot delayed tasks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancelFunc
}

type systemScheduler struct{}

// SystemScheduler schedules on the runtime timers (time.AfterFunc).
func SystemScheduler() Scheduler { return systemScheduler{} }

func (systemScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// ManualScheduler is a Scheduler driven by Advance instead of wall time.
// Due tasks run on the goroutine calling Advance, in due-time order.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at   time.Duration
	seq  int
	f    func()
	done bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	task := &manualTask{at: s.now + d, seq: s.seq, f: f}
	s.tasks = append(s.tasks, task)

	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if task.done {
			return false
		}
		task.done = true
		return true
	}
}

// Advance moves the clock forward and runs every task that became due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due, rest []*manualTask
	for _, task := range s.tasks {
		switch {
		case task.done:
		case task.at <= s.now:
			task.done = true
			due = append(due, task)
		default:
			rest = append(rest, task)
		}
	}
	s.tasks = rest
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, task := range due {
		task.f()
	}
}

// Pending returns the number of tasks that are scheduled and not yet run or cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.tasks {
		if !task.done {
			n++
		}
	}
	return n
}

// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Backend is the simulated server side of the listing page.
type Backend interface {
	// SetNetworkCondition tells the backend which network quality to simulate.
	SetNetworkCondition(s ConnectionStatus)
	FetchPropertyDetails(ctx context.Context) (*Property, error)
	SubmitLead(ctx context.Context, lead Lead) error
	// SyncLeads receives leads flushed from the local queue. The queue is already
	// cleared when it is called, whatever it returns.
	SyncLeads(ctx context.Context, leads []Lead) error
}

// DemoConfig holds the collaborators and settings of a Demo.
type DemoConfig struct {
	Backend   Backend   // required
	Queue     LeadQueue // defaults to a MemoryQueue
	Scheduler Scheduler // defaults to SystemScheduler
	Recorder  Recorder  // defaults to NopRecorder
	Notifier  Notifier  // optional
	Logger    *slog.Logger

	InitialStatus ConnectionStatus
	SyncDelay     time.Duration // defaults to DefaultSyncDelay
	// KeepPendingSync leaves an armed sync in place when the status leaves ONLINE
	// before it fires. By default the pending sync is cancelled.
	KeepPendingSync bool
	Locale          string
	Now             func() time.Time
}

// State is a point-in-time view for the presentation shell.
type State struct {
	Status     ConnectionStatus `json:"status"`
	Region     ServerRegion     `json:"region"`
	RegionName string           `json:"region_name"`
	Pending    int              `json:"pending"`
	SyncState  string           `json:"sync_state"`
	Toast      *Notification    `json:"toast,omitempty"`
	Loading    bool             `json:"loading"`
	Property   *Property        `json:"property,omitempty"`
}

// Demo owns the simulated connection state, the local lead queue and the sync trigger.
// All mutations are serialized by one lock.
type Demo struct {
	backend  Backend
	queue    LeadQueue
	recorder Recorder
	notifier Notifier
	logger   *slog.Logger
	locale   string
	keep     bool
	now      func() time.Time

	controller *Controller
	trigger    *SyncTrigger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	toast    *Notification
	property *Property
	loading  bool
	subs     map[int]chan Notification
	nextSub  int
}

// NewDemo creates a Demo starting in cfg.InitialStatus (ONLINE when unset).
func NewDemo(cfg *DemoConfig) (*Demo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Backend == nil {
		return nil, fmt.Errorf("config.Backend must be provided")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	queue := cfg.Queue
	if queue == nil {
		queue = NewMemoryQueue()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = NopRecorder{}
	}
	delay := cfg.SyncDelay
	if delay <= 0 {
		delay = DefaultSyncDelay
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Demo{
		backend:    cfg.Backend,
		queue:      queue,
		recorder:   recorder,
		notifier:   cfg.Notifier,
		logger:     logger,
		locale:     cfg.Locale,
		keep:       cfg.KeepPendingSync,
		now:        now,
		controller: NewController(cfg.InitialStatus),
		ctx:        ctx,
		cancel:     cancel,
		subs:       make(map[int]chan Notification),
	}
	d.trigger = NewSyncTrigger(cfg.Scheduler, delay, d.runSync)

	status := d.controller.Status()
	d.backend.SetNetworkCondition(status)
	d.recorder.ObserveStatus(status, d.controller.Region())

	return d, nil
}

// SetStatus switches the simulated network, emits the matching notification and,
// when the new status is ONLINE, arms the delayed sync.
func (d *Demo) SetStatus(s ConnectionStatus) Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || s.IsZero() {
		return Notification{}
	}

	prev := d.controller.SetStatus(s)
	region := d.controller.Region()
	d.backend.SetNetworkCondition(s)
	d.recorder.ObserveStatus(s, region)

	n := NotificationFor(s, d.locale)
	n.At = d.now()
	d.emitLocked(n)

	d.logger.Info("📶 Network condition changed",
		"from", prev.String(),
		"to", s.String(),
		"region", region.DisplayName(d.locale))

	if s == StatusOnline {
		if !d.trigger.Arm() {
			d.logger.Debug("Sync already pending, keeping its deadline")
		}
	} else if !d.keep && d.trigger.Cancel() {
		d.recorder.ObserveSync(SyncOutcomeCancelled, 0)
		d.logger.Info("Pending sync cancelled", "status", s.String())
	}

	return n
}

func (d *Demo) Status() ConnectionStatus { return d.controller.Status() }

func (d *Demo) Region() ServerRegion { return d.controller.Region() }

// RegionName returns the display label of the current region.
func (d *Demo) RegionName() string { return d.controller.Region().DisplayName(d.locale) }

func (d *Demo) SyncState() SyncState { return d.trigger.State() }

// runSync is the sync trigger action: flush the local queue and report the count.
func (d *Demo) runSync() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if !d.keep && d.controller.Status() != StatusOnline {
		d.mu.Unlock()
		d.recorder.ObserveSync(SyncOutcomeCancelled, 0)
		return
	}

	leads, err := d.queue.List(d.ctx)
	if err != nil {
		d.mu.Unlock()
		d.logger.Error("Failed to read local leads", "error", err)
		return
	}
	if len(leads) == 0 {
		d.mu.Unlock()
		d.recorder.ObserveSync(SyncOutcomeEmpty, 0)
		return
	}

	d.logger.Info("🔄 Syncing leads to backend", "count", len(leads))
	if err := d.queue.Clear(d.ctx); err != nil {
		d.mu.Unlock()
		d.logger.Error("Failed to clear local leads", "error", err)
		return
	}
	d.recorder.ObserveQueueDepth(0)
	d.recorder.ObserveSync(SyncOutcomeSynced, len(leads))

	n := SyncNotification(len(leads), d.locale)
	n.At = d.now()
	d.emitLocked(n)
	d.mu.Unlock()

	for i := range leads {
		leads[i].Synced = true
	}
	if err := d.backend.SyncLeads(d.ctx, leads); err != nil {
		d.logger.Warn("Backend rejected synced leads", "count", len(leads), "error", err)
	}
}

// SubmitLead sends a lead straight to the backend when ONLINE; otherwise, or when the
// backend is unreachable, it is appended to the local queue. It reports whether the
// lead was queued.
func (d *Demo) SubmitLead(ctx context.Context, in LeadInput) (Lead, bool, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return Lead{}, false, ErrClosed
	}
	lead := NewLead(in, d.now())
	online := d.controller.Status() == StatusOnline
	d.mu.Unlock()

	if online {
		sent := lead
		sent.Synced = true
		err := d.backend.SubmitLead(ctx, sent)
		if err == nil {
			d.mu.Lock()
			d.recorder.ObserveLeadSubmitted(false)
			n := Notification{Kind: KindSuccess, Message: CatalogFor(d.locale).LeadSent, At: d.now()}
			d.emitLocked(n)
			d.mu.Unlock()
			d.logger.Info("📨 Lead sent", "id", sent.ID)
			return sent, false, nil
		}
		d.logger.Warn("Lead submission failed, queueing locally", "id", lead.ID, "error", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.queue.Enqueue(ctx, lead); err != nil {
		return Lead{}, false, fmt.Errorf("failed to queue lead: %w", err)
	}
	d.recorder.ObserveLeadSubmitted(true)
	if depth, err := d.queue.Len(ctx); err == nil {
		d.recorder.ObserveQueueDepth(depth)
	}
	n := Notification{Kind: KindInfo, Message: CatalogFor(d.locale).LeadQueued, At: d.now()}
	d.emitLocked(n)
	d.logger.Info("💾 Lead queued offline", "id", lead.ID)

	return lead, true, nil
}

// LocalLeads returns the queued leads in insertion order.
func (d *Demo) LocalLeads(ctx context.Context) ([]Lead, error) {
	return d.queue.List(ctx)
}

// ClearLocalLeads empties the queue without notifying anyone.
func (d *Demo) ClearLocalLeads(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.queue.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear local leads: %w", err)
	}
	d.recorder.ObserveQueueDepth(0)
	return nil
}

// PendingCount returns the current queue length.
func (d *Demo) PendingCount(ctx context.Context) (int, error) {
	n, err := d.queue.Len(ctx)
	if err != nil {
		return 0, err
	}
	d.recorder.ObserveQueueDepth(n)
	return n, nil
}

// LoadProperty fetches the listing. On failure the previous listing (if any) is kept
// and the error, wrapping ErrFetchFailed, is logged and returned for the shell to
// render its fallback.
func (d *Demo) LoadProperty(ctx context.Context) (*Property, error) {
	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	p, err := d.backend.FetchPropertyDetails(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false

	if err != nil {
		d.recorder.ObserveFetch(FetchOutcomeFailed)
		d.logger.Warn("Using fallback UI", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if p.Cached {
		d.recorder.ObserveFetch(FetchOutcomeCached)
	} else {
		d.recorder.ObserveFetch(FetchOutcomeOK)
	}
	d.property = p
	return p, nil
}

// Property returns the last loaded listing and whether a fetch is in flight.
func (d *Demo) Property() (*Property, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.property, d.loading
}

// Toast returns the notification currently on screen, or nil.
func (d *Demo) Toast() *Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.toast == nil {
		return nil
	}
	n := *d.toast
	return &n
}

func (d *Demo) DismissToast() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.toast = nil
}

// Subscribe returns a channel receiving every later notification and a function
// to stop the subscription. Notifications are dropped for a subscriber whose
// buffer is full.
func (d *Demo) Subscribe(buffer int) (<-chan Notification, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Notification, buffer)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		close(ch)
		return ch, func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if sub, ok := d.subs[id]; ok {
				delete(d.subs, id)
				close(sub)
			}
		})
	}
}

// Snapshot collects everything the shell renders.
func (d *Demo) Snapshot(ctx context.Context) State {
	pending, err := d.PendingCount(ctx)
	if err != nil {
		d.logger.Warn("Failed to read pending leads", "error", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var toast *Notification
	if d.toast != nil {
		n := *d.toast
		toast = &n
	}
	return State{
		Status:     d.controller.Status(),
		Region:     d.controller.Region(),
		RegionName: d.controller.Region().DisplayName(d.locale),
		Pending:    pending,
		SyncState:  d.trigger.State().String(),
		Toast:      toast,
		Loading:    d.loading,
		Property:   d.property,
	}
}

// Close cancels any pending sync and ends all subscriptions.
func (d *Demo) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.trigger.Cancel()
	d.cancel()
	for id, ch := range d.subs {
		delete(d.subs, id)
		close(ch)
	}
	return nil
}

func (d *Demo) emitLocked(n Notification) {
	d.toast = &n
	if d.notifier != nil {
		d.notifier.Notify(n)
	}
	for _, ch := range d.subs {
		select {
		case ch <- n:
		default:
			d.logger.Debug("Dropping notification for slow subscriber", "message", n.Message)
		}
	}
}

package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/resiliencere/leadsync/backend"
	"github.com/resiliencere/leadsync/chaos"
	"github.com/resiliencere/leadsync/leadstore"
)

// ListingAppConfig holds configuration for a listing page instance
type ListingAppConfig struct {
	DatabaseFile    string // empty keeps the queue in memory
	InitialStatus   chaos.ConnectionStatus
	SyncDelay       time.Duration
	PollInterval    time.Duration
	KeepPendingSync bool
	Locale          string
	Backend         *backend.MockConfig
	Logger          *slog.Logger
}

// ListingApp is one simulated visitor session on the listing page
type ListingApp struct {
	config *ListingAppConfig
	logger *slog.Logger

	backend *backend.Mock
	store   *leadstore.Store
	demo    *chaos.Demo
	ui      *UISimulator

	pollCancel context.CancelFunc
	pollDone   chan struct{}

	isRunning bool
	mu        sync.Mutex
}

func NewListingApp(config *ListingAppConfig) (*ListingApp, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &ListingApp{
		config: config,
		logger: logger,
		ui:     NewUISimulator(logger),
	}

	backendCfg := backend.DefaultMockConfig()
	if config.Backend != nil {
		*backendCfg = *config.Backend
	}
	backendCfg.Logger = logger
	app.backend = backend.NewMock(backendCfg)

	var queue chaos.LeadQueue
	if config.DatabaseFile != "" {
		store, err := leadstore.Open(config.DatabaseFile, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open lead store: %w", err)
		}
		app.store = store
		queue = store
	}

	demo, err := chaos.NewDemo(&chaos.DemoConfig{
		Backend:         app.backend,
		Queue:           queue,
		Notifier:        app.ui,
		Logger:          logger,
		InitialStatus:   config.InitialStatus,
		SyncDelay:       config.SyncDelay,
		KeepPendingSync: config.KeepPendingSync,
		Locale:          config.Locale,
	})
	if err != nil {
		app.closeStore()
		return nil, fmt.Errorf("failed to create demo: %w", err)
	}
	app.demo = demo

	return app, nil
}

// OnLaunch starts the pending badge poll
func (app *ListingApp) OnLaunch(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.isRunning {
		return errors.New("app is already running")
	}
	app.logger.Info("🚀 Listing page opened", "status", app.demo.Status().String(), "region", app.demo.RegionName())

	pollCtx, cancel := context.WithCancel(ctx)
	app.pollCancel = cancel
	app.pollDone = make(chan struct{})
	go func() {
		defer close(app.pollDone)
		chaos.PollPending(pollCtx, app.config.PollInterval, app.demo.PendingCount, app.ui.SetPendingBadge, app.logger)
	}()

	app.isRunning = true
	return nil
}

// SetStatus flips the chaos panel toggle
func (app *ListingApp) SetStatus(s chaos.ConnectionStatus) chaos.Notification {
	return app.demo.SetStatus(s)
}

// SubmitLead fills in and sends the contact form
func (app *ListingApp) SubmitLead(ctx context.Context, name string) (chaos.Lead, bool, error) {
	return app.demo.SubmitLead(ctx, chaos.LeadInput{
		Name:    name,
		Phone:   "0901234567",
		Email:   "visitor@example.com",
		Message: "Is the penthouse still available?",
	})
}

// LoadProperty fetches the listing as the page does on mount
func (app *ListingApp) LoadProperty(ctx context.Context) (*chaos.Property, error) {
	return app.demo.LoadProperty(ctx)
}

func (app *ListingApp) PendingCount(ctx context.Context) (int, error) {
	return app.demo.PendingCount(ctx)
}

// WaitFor polls cond until it holds or timeout elapses
func (app *ListingApp) WaitFor(ctx context.Context, timeout time.Duration, what string, cond func() bool) error {
	deadline := time.After(timeout)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for !cond() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("timed out after %s waiting for %s", timeout, what)
		case <-ticker.C:
		}
	}
	return nil
}

func (app *ListingApp) GetDemo() *chaos.Demo {
	return app.demo
}

func (app *ListingApp) GetBackend() *backend.Mock {
	return app.backend
}

func (app *ListingApp) GetUI() *UISimulator {
	return app.ui
}

func (app *ListingApp) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.pollCancel != nil {
		app.pollCancel()
		<-app.pollDone
		app.pollCancel = nil
	}
	if err := app.demo.Close(); err != nil {
		app.logger.Warn("Failed to close demo", "error", err)
	}
	app.closeStore()

	app.isRunning = false
	app.logger.Debug("✅ Listing page closed")
	return nil
}

func (app *ListingApp) closeStore() {
	if app.store == nil {
		return
	}
	if err := app.store.Close(); err != nil {
		app.logger.Warn("Failed to close lead store", "error", err)
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		os.Remove(app.config.DatabaseFile + suffix)
	}
	app.store = nil
}

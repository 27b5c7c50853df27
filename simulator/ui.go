package simulator

import (
	"log/slog"
	"sync"

	"github.com/resiliencere/leadsync/chaos"
)

// UISimulator plays the part of the listing page: it shows toasts and the pending badge
type UISimulator struct {
	logger *slog.Logger

	// UI State
	toast         *chaos.Notification
	pendingBadge  int
	notifications []chaos.Notification

	mu sync.RWMutex
}

var _ chaos.Notifier = (*UISimulator)(nil)

// NewUISimulator creates a new UI simulator
func NewUISimulator(logger *slog.Logger) *UISimulator {
	return &UISimulator{logger: logger}
}

// Notify shows a toast
func (ui *UISimulator) Notify(n chaos.Notification) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	ui.toast = &n
	ui.notifications = append(ui.notifications, n)
	ui.logger.Debug("📱 UI Toast", "kind", string(n.Kind), "message", n.Message)
}

// Toast returns the toast currently on screen
func (ui *UISimulator) Toast() *chaos.Notification {
	ui.mu.RLock()
	defer ui.mu.RUnlock()
	if ui.toast == nil {
		return nil
	}
	n := *ui.toast
	return &n
}

// Notifications returns every toast shown so far
func (ui *UISimulator) Notifications() []chaos.Notification {
	ui.mu.RLock()
	defer ui.mu.RUnlock()
	out := make([]chaos.Notification, len(ui.notifications))
	copy(out, ui.notifications)
	return out
}

// SyncNotifications returns the toasts that reported a flush to the CRM
func (ui *UISimulator) SyncNotifications() []chaos.Notification {
	var out []chaos.Notification
	for _, n := range ui.Notifications() {
		if n.Synced > 0 {
			out = append(out, n)
		}
	}
	return out
}

// SetPendingBadge updates the pending leads badge count
func (ui *UISimulator) SetPendingBadge(count int) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	if ui.pendingBadge != count {
		ui.pendingBadge = count
		if count == 0 {
			ui.logger.Debug("✅ No leads waiting")
		}
	}
}

// GetPendingBadge returns the current pending badge count
func (ui *UISimulator) GetPendingBadge() int {
	ui.mu.RLock()
	defer ui.mu.RUnlock()
	return ui.pendingBadge
}

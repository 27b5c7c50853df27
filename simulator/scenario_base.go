package simulator

import (
	"context"
	"fmt"

	"github.com/resiliencere/leadsync/chaos"
	"github.com/resiliencere/leadsync/config"
)

// Scenario represents a chaos scenario that can be executed
type Scenario interface {
	Name() string
	Description() string
	Setup(ctx context.Context) error
	Execute(ctx context.Context) error
	Verify(ctx context.Context) error
	Cleanup(ctx context.Context) error
	// Report adds scenario-specific figures to the run report.
	Report(report *ScenarioReport)
}

// BaseScenario provides common functionality for all scenarios
type BaseScenario struct {
	simulator *Simulator
	config    *config.ScenarioConfig
	app       *ListingApp
}

// NewBaseScenario creates a new base scenario
func NewBaseScenario(simulator *Simulator, scenarioName string) *BaseScenario {
	return &BaseScenario{
		simulator: simulator,
		config:    config.GetScenarioConfig(scenarioName),
	}
}

func (bs *BaseScenario) Name() string {
	return bs.config.Name
}

func (bs *BaseScenario) Description() string {
	return bs.config.Description
}

// Setup opens a fresh listing page for the scenario
func (bs *BaseScenario) Setup(ctx context.Context) error {
	app, err := bs.simulator.CreateListingApp(bs.config)
	if err != nil {
		return fmt.Errorf("failed to create listing app: %w", err)
	}
	bs.app = app

	if err := bs.app.OnLaunch(ctx); err != nil {
		return fmt.Errorf("failed to launch app: %w", err)
	}
	return nil
}

// Cleanup closes the listing page
func (bs *BaseScenario) Cleanup(ctx context.Context) error {
	if bs.app != nil {
		if err := bs.app.Close(); err != nil {
			return fmt.Errorf("failed to close app: %w", err)
		}
	}
	return nil
}

// Report records the common counters
func (bs *BaseScenario) Report(report *ScenarioReport) {
	if bs.app == nil {
		return
	}
	report.AddMetric("notifications", len(bs.app.GetUI().Notifications()))
	report.AddMetric("sync_notifications", len(bs.app.GetUI().SyncNotifications()))
	report.AddMetric("crm_leads", len(bs.app.GetBackend().CRMLeads()))
}

// submitLeads sends the configured number of leads and reports how many were queued.
func (bs *BaseScenario) submitLeads(ctx context.Context) (int, error) {
	queued := 0
	for i := 1; i <= bs.config.Leads; i++ {
		_, wasQueued, err := bs.app.SubmitLead(ctx, fmt.Sprintf("%s %d", bs.config.LeadPrefix, i))
		if err != nil {
			return queued, fmt.Errorf("failed to submit lead %d: %w", i, err)
		}
		if wasQueued {
			queued++
		}
	}
	return queued, nil
}

func (bs *BaseScenario) expectPending(ctx context.Context, want int) error {
	got, err := bs.app.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending leads: %w", err)
	}
	if got != want {
		return fmt.Errorf("expected %d pending leads, got %d", want, got)
	}
	return nil
}

func (bs *BaseScenario) expectRegion(want chaos.ServerRegion) error {
	if got := bs.app.GetDemo().Region(); got != want {
		return fmt.Errorf("expected region %s, got %s", want, got)
	}
	return nil
}

// waitForSync waits for the delayed sync to raise its toast and for the CRM to
// hold crmLeads leads. The toast is raised before the CRM receives the batch.
func (bs *BaseScenario) waitForSync(ctx context.Context, crmLeads int) error {
	timeout := 4*bs.simulator.config.SyncDelay + bs.simulator.config.PollInterval
	return bs.app.WaitFor(ctx, timeout, "delayed sync", func() bool {
		return len(bs.app.GetUI().SyncNotifications()) >= 1 &&
			len(bs.app.GetBackend().CRMLeads()) >= crmLeads
	})
}

package simulator

import (
	"context"
	"fmt"

	"github.com/resiliencere/leadsync/chaos"
)

// OfflineOnlineScenario captures leads offline and flushes them when the network returns
type OfflineOnlineScenario struct {
	*BaseScenario
	queued int
}

func NewOfflineOnlineScenario(simulator *Simulator) Scenario {
	return &OfflineOnlineScenario{
		BaseScenario: NewBaseScenario(simulator, "offline-online"),
	}
}

func (s *OfflineOnlineScenario) Execute(ctx context.Context) error {
	logger := s.simulator.GetLogger()
	logger.Info("🎯 Executing Offline/Online Scenario")

	// 1. Connection drops
	s.app.SetStatus(chaos.StatusOffline)
	if err := s.expectRegion(chaos.RegionEdge); err != nil {
		return err
	}

	// 2. Visitors keep submitting the contact form
	queued, err := s.submitLeads(ctx)
	if err != nil {
		return err
	}
	s.queued = queued
	if err := s.expectPending(ctx, s.config.Leads); err != nil {
		return err
	}
	logger.Info("💾 Leads saved offline", "count", queued)

	// 3. Connection returns and the delayed sync flushes the queue
	s.app.SetStatus(chaos.StatusOnline)
	if err := s.waitForSync(ctx, s.queued); err != nil {
		return err
	}
	logger.Info("✅ Offline leads synced")
	return nil
}

func (s *OfflineOnlineScenario) Verify(ctx context.Context) error {
	if err := s.expectPending(ctx, 0); err != nil {
		return err
	}
	syncs := s.app.GetUI().SyncNotifications()
	if len(syncs) != 1 {
		return fmt.Errorf("expected exactly one sync notification, got %d", len(syncs))
	}
	if syncs[0].Synced != s.queued {
		return fmt.Errorf("sync notification reported %d leads, expected %d", syncs[0].Synced, s.queued)
	}
	if got := len(s.app.GetBackend().CRMLeads()); got != s.queued {
		return fmt.Errorf("CRM holds %d leads, expected %d", got, s.queued)
	}
	return s.expectRegion(chaos.RegionPrimary)
}

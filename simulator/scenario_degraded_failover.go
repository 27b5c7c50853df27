package simulator

import (
	"context"
	"fmt"

	"github.com/resiliencere/leadsync/chaos"
)

// DegradedFailoverScenario routes to the backup region and keeps leads local until recovery
type DegradedFailoverScenario struct {
	*BaseScenario
	warning chaos.Notification
	queued  int
}

func NewDegradedFailoverScenario(simulator *Simulator) Scenario {
	return &DegradedFailoverScenario{
		BaseScenario: NewBaseScenario(simulator, "degraded-failover"),
	}
}

func (s *DegradedFailoverScenario) Execute(ctx context.Context) error {
	logger := s.simulator.GetLogger()
	logger.Info("🎯 Executing Degraded Failover Scenario")

	s.warning = s.app.SetStatus(chaos.StatusDegraded)
	if err := s.expectRegion(chaos.RegionBackup); err != nil {
		return err
	}
	logger.Info("🌏 Failed over", "region", s.app.GetDemo().RegionName())

	queued, err := s.submitLeads(ctx)
	if err != nil {
		return err
	}
	s.queued = queued
	if err := s.expectPending(ctx, s.config.Leads); err != nil {
		return err
	}

	s.app.SetStatus(chaos.StatusOnline)
	return s.waitForSync(ctx, s.queued)
}

func (s *DegradedFailoverScenario) Verify(ctx context.Context) error {
	if s.warning.Kind != chaos.KindWarning {
		return fmt.Errorf("expected a warning notification on failover, got %q", s.warning.Kind)
	}
	if s.queued != s.config.Leads {
		return fmt.Errorf("expected %d leads queued while degraded, got %d", s.config.Leads, s.queued)
	}
	if err := s.expectPending(ctx, 0); err != nil {
		return err
	}
	return s.expectRegion(chaos.RegionPrimary)
}

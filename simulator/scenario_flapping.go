package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/resiliencere/leadsync/chaos"
)

// FlappingScenario drops the connection again before the delayed sync fires
type FlappingScenario struct {
	*BaseScenario
}

func NewFlappingScenario(simulator *Simulator) Scenario {
	return &FlappingScenario{
		BaseScenario: NewBaseScenario(simulator, "flapping"),
	}
}

func (s *FlappingScenario) Execute(ctx context.Context) error {
	logger := s.simulator.GetLogger()
	logger.Info("🎯 Executing Flapping Scenario")

	if _, err := s.submitLeads(ctx); err != nil {
		return err
	}

	s.app.SetStatus(chaos.StatusOnline)
	s.app.SetStatus(chaos.StatusOffline)
	logger.Info("📶 Connection flapped before the sync delay elapsed")

	// Give a pending sync every chance to fire
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * s.simulator.config.SyncDelay):
		return nil
	}
}

func (s *FlappingScenario) Verify(ctx context.Context) error {
	syncs := len(s.app.GetUI().SyncNotifications())

	if s.simulator.config.CancelPendingSync {
		if syncs != 0 {
			return fmt.Errorf("expected the pending sync to be cancelled, got %d sync notifications", syncs)
		}
		return s.expectPending(ctx, s.config.Leads)
	}

	// Without cancellation the armed sync still flushes while OFFLINE
	if syncs != 1 {
		return fmt.Errorf("expected the pending sync to fire, got %d sync notifications", syncs)
	}
	return s.expectPending(ctx, 0)
}

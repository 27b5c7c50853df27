package simulator

import (
	"context"
	"fmt"
)

// DirectSubmitScenario sends leads straight to the CRM while online
type DirectSubmitScenario struct {
	*BaseScenario
	queued int
}

func NewDirectSubmitScenario(simulator *Simulator) Scenario {
	return &DirectSubmitScenario{
		BaseScenario: NewBaseScenario(simulator, "direct-submit"),
	}
}

func (s *DirectSubmitScenario) Execute(ctx context.Context) error {
	s.simulator.GetLogger().Info("🎯 Executing Direct Submit Scenario")

	queued, err := s.submitLeads(ctx)
	s.queued = queued
	return err
}

func (s *DirectSubmitScenario) Verify(ctx context.Context) error {
	if s.queued != 0 {
		return fmt.Errorf("expected no queued leads while online, got %d", s.queued)
	}
	if err := s.expectPending(ctx, 0); err != nil {
		return err
	}
	if got := len(s.app.GetBackend().CRMLeads()); got != s.config.Leads {
		return fmt.Errorf("CRM holds %d leads, expected %d", got, s.config.Leads)
	}
	return nil
}

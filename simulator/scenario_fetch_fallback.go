package simulator

import (
	"context"
	"errors"
	"fmt"

	"github.com/resiliencere/leadsync/chaos"
)

// FetchFallbackScenario checks the property fallback UI and the edge cache
type FetchFallbackScenario struct {
	*BaseScenario
	coldErr error
	fresh   *chaos.Property
	cached  *chaos.Property
}

func NewFetchFallbackScenario(simulator *Simulator) Scenario {
	return &FetchFallbackScenario{
		BaseScenario: NewBaseScenario(simulator, "fetch-fallback"),
	}
}

func (s *FetchFallbackScenario) Execute(ctx context.Context) error {
	logger := s.simulator.GetLogger()
	logger.Info("🎯 Executing Fetch Fallback Scenario")

	// Offline with nothing cached yet: the page shows its fallback
	_, s.coldErr = s.app.LoadProperty(ctx)

	s.app.SetStatus(chaos.StatusOnline)
	fresh, err := s.app.LoadProperty(ctx)
	if err != nil {
		return fmt.Errorf("online fetch failed: %w", err)
	}
	s.fresh = fresh

	s.app.SetStatus(chaos.StatusOffline)
	cached, err := s.app.LoadProperty(ctx)
	if err != nil {
		return fmt.Errorf("cached fetch failed: %w", err)
	}
	s.cached = cached
	return nil
}

func (s *FetchFallbackScenario) Verify(ctx context.Context) error {
	if !errors.Is(s.coldErr, chaos.ErrFetchFailed) {
		return fmt.Errorf("expected the first offline fetch to fail, got %v", s.coldErr)
	}
	if s.fresh == nil || s.fresh.Cached {
		return errors.New("expected a fresh listing while online")
	}
	if s.cached == nil || !s.cached.Cached {
		return errors.New("expected the edge-cached listing while offline")
	}
	if s.cached.ID != s.fresh.ID {
		return fmt.Errorf("cached listing %s does not match %s", s.cached.ID, s.fresh.ID)
	}
	return nil
}

func (s *FetchFallbackScenario) Report(report *ScenarioReport) {
	s.BaseScenario.Report(report)
	if s.cached != nil {
		report.AddMetric("cached_property", s.cached.ID)
	}
}

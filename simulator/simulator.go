// Package simulator drives the listing page through scripted chaos scenarios.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/resiliencere/leadsync/backend"
	"github.com/resiliencere/leadsync/config"
)

// Simulator runs chaos scenarios against fresh listing page instances
type Simulator struct {
	config   *config.Config
	logger   *slog.Logger
	reporter *Reporter

	scenarios map[string]Scenario
}

// NewSimulator creates a new scenario simulator
func NewSimulator(cfg *config.Config) (*Simulator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sim := &Simulator{
		config:    cfg,
		logger:    logger,
		reporter:  NewReporter(cfg.ReportFile, logger),
		scenarios: make(map[string]Scenario),
	}
	for _, name := range GetAvailableScenarios() {
		if scenario := GetScenario(sim, name); scenario != nil {
			sim.scenarios[name] = scenario
		}
	}
	return sim, nil
}

// Close writes the report, if one is configured
func (s *Simulator) Close() error {
	return s.reporter.Close()
}

// Run executes one scenario, or every scenario for "all"
func (s *Simulator) Run(ctx context.Context, scenarioName string) error {
	if scenarioName != "all" {
		return s.RunScenario(ctx, scenarioName)
	}

	names := GetAvailableScenarios()
	s.logger.Info("🎯 Running all scenarios", "count", len(names))
	for i, name := range names {
		s.logger.Info("📋 Running scenario", "index", i+1, "of", len(names), "name", name)
		if err := s.RunScenario(ctx, name); err != nil {
			return fmt.Errorf("scenario %s failed: %w", name, err)
		}
	}
	return nil
}

// RunScenario executes a specific scenario
func (s *Simulator) RunScenario(ctx context.Context, scenarioName string) error {
	scenario, exists := s.scenarios[scenarioName]
	if !exists {
		return fmt.Errorf("unknown scenario: %s", scenarioName)
	}

	s.logger.Debug("Starting scenario", "name", scenarioName, "description", scenario.Description())
	startTime := time.Now()
	report := s.reporter.StartScenario(scenarioName, scenario.Description())

	err := s.runPhases(ctx, scenario)
	scenario.Report(report)
	if cleanupErr := scenario.Cleanup(ctx); cleanupErr != nil {
		s.logger.Warn("Cleanup failed", "name", scenarioName, "error", cleanupErr)
	}
	report.SetDuration(time.Since(startTime))

	if err != nil {
		report.SetError(err)
		s.logger.Error("❌ Scenario failed", "name", scenarioName, "error", err)
		return err
	}
	report.SetSuccess()
	s.logger.Info("✅ Scenario completed", "name", scenarioName, "duration", report.Duration.String())
	return nil
}

func (s *Simulator) runPhases(ctx context.Context, scenario Scenario) error {
	if err := scenario.Setup(ctx); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	if err := scenario.Execute(ctx); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	if err := scenario.Verify(ctx); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	return nil
}

// CreateListingApp opens a listing page configured for a scenario
func (s *Simulator) CreateListingApp(scenarioConfig *config.ScenarioConfig) (*ListingApp, error) {
	var dbFile string
	if s.config.QueueDB != "" {
		safeName := strings.NewReplacer(" ", "_", "/", "_").Replace(scenarioConfig.Name)
		dbFile = fmt.Sprintf("%s.%s_%d", s.config.QueueDB, safeName, time.Now().UnixNano())
		s.logger.Debug("Creating clean lead store", "file", dbFile)
	}

	return NewListingApp(&ListingAppConfig{
		DatabaseFile:    dbFile,
		InitialStatus:   scenarioConfig.InitialStatus,
		SyncDelay:       s.config.SyncDelay,
		PollInterval:    s.config.PollInterval,
		KeepPendingSync: !s.config.CancelPendingSync,
		Locale:          s.config.Locale,
		Backend: &backend.MockConfig{
			Latency:         s.config.FetchLatency,
			DegradedLatency: s.config.DegradedExtraLatency,
		},
		Logger: s.logger,
	})
}

// GetLogger returns the simulator logger
func (s *Simulator) GetLogger() *slog.Logger {
	return s.logger
}

// GetReporter returns the scenario reporter
func (s *Simulator) GetReporter() *Reporter {
	return s.reporter
}

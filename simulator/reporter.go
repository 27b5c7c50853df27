package simulator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Reporter handles scenario reporting and metrics
type Reporter struct {
	outputFile string
	logger     *slog.Logger

	reports []*ScenarioReport
	mu      sync.Mutex
}

// NewReporter creates a new reporter
func NewReporter(outputFile string, logger *slog.Logger) *Reporter {
	return &Reporter{
		outputFile: outputFile,
		logger:     logger,
	}
}

// StartScenario starts tracking a new scenario
func (r *Reporter) StartScenario(name, description string) *ScenarioReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := &ScenarioReport{
		Name:        name,
		Description: description,
		StartTime:   time.Now(),
		Status:      "running",
		Metrics:     make(map[string]any),
	}
	r.reports = append(r.reports, report)
	return report
}

// Summary builds the final report from every scenario tracked so far
func (r *Reporter) Summary() FinalReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	final := FinalReport{
		GeneratedAt:    time.Now(),
		TotalScenarios: len(r.reports),
		Scenarios:      make([]ScenarioReport, 0, len(r.reports)),
	}
	for _, report := range r.reports {
		switch report.Status {
		case "success":
			final.SuccessfulRuns++
		case "failed":
			final.FailedRuns++
		}
		final.TotalDuration += report.Duration
		final.Scenarios = append(final.Scenarios, *report)
	}
	return final
}

// Close finalizes the reporter and writes output if configured
func (r *Reporter) Close() error {
	if r.outputFile == "" {
		return nil
	}

	final := r.Summary()
	data, err := json.MarshalIndent(final, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(r.outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	r.logger.Info("📊 Report written",
		"file", r.outputFile,
		"scenarios", final.TotalScenarios,
		"successful", final.SuccessfulRuns,
		"failed", final.FailedRuns)
	return nil
}

// ScenarioReport tracks metrics for a single scenario
type ScenarioReport struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Duration    time.Duration  `json:"duration"`
	Status      string         `json:"status"` // running, success, failed
	Error       string         `json:"error,omitempty"`
	Metrics     map[string]any `json:"metrics"`
}

// SetDuration sets the scenario duration
func (sr *ScenarioReport) SetDuration(duration time.Duration) {
	sr.Duration = duration
	sr.EndTime = sr.StartTime.Add(duration)
}

// SetSuccess marks the scenario as successful
func (sr *ScenarioReport) SetSuccess() {
	sr.Status = "success"
}

// SetError marks the scenario as failed with an error
func (sr *ScenarioReport) SetError(err error) {
	sr.Status = "failed"
	sr.Error = err.Error()
}

// AddMetric adds a metric to the scenario report
func (sr *ScenarioReport) AddMetric(key string, value any) {
	sr.Metrics[key] = value
}

// FinalReport contains the complete run report
type FinalReport struct {
	GeneratedAt    time.Time        `json:"generated_at"`
	TotalScenarios int              `json:"total_scenarios"`
	SuccessfulRuns int              `json:"successful_runs"`
	FailedRuns     int              `json:"failed_runs"`
	TotalDuration  time.Duration    `json:"total_duration"`
	Scenarios      []ScenarioReport `json:"scenarios"`
}

package config

import "github.com/resiliencere/leadsync/chaos"

// ScenarioConfig holds configuration specific to a scenario
type ScenarioConfig struct {
	Name        string
	Description string

	// Network condition the page starts in
	InitialStatus chaos.ConnectionStatus

	// Leads submitted by the simulated visitors
	Leads      int
	LeadPrefix string
}

// GetScenarioConfig returns configuration for a specific scenario
func GetScenarioConfig(scenarioName string) *ScenarioConfig {
	configs := map[string]*ScenarioConfig{
		"offline-online": {
			Name:          "Offline/Online Transitions",
			Description:   "Leads captured while offline are flushed to the CRM once the connection returns",
			InitialStatus: chaos.StatusOnline,
			Leads:         3,
			LeadPrefix:    "Offline Visitor",
		},
		"degraded-failover": {
			Name:          "Degraded Failover",
			Description:   "An unstable network routes to the backup region and keeps leads local",
			InitialStatus: chaos.StatusOnline,
			Leads:         2,
			LeadPrefix:    "Tokyo Visitor",
		},
		"flapping": {
			Name:          "Flapping Connection",
			Description:   "The connection drops again before the delayed sync fires",
			InitialStatus: chaos.StatusOffline,
			Leads:         2,
			LeadPrefix:    "Flaky Visitor",
		},
		"direct-submit": {
			Name:          "Direct Submit",
			Description:   "Online submissions bypass the local queue",
			InitialStatus: chaos.StatusOnline,
			Leads:         2,
			LeadPrefix:    "Online Visitor",
		},
		"fetch-fallback": {
			Name:          "Fetch Fallback",
			Description:   "Property details fall back to the UI placeholder, then to the edge cache",
			InitialStatus: chaos.StatusOffline,
		},
	}

	config := configs[scenarioName]
	if config == nil {
		return &ScenarioConfig{
			Name:          "Unknown",
			Description:   "Unknown scenario",
			InitialStatus: chaos.StatusOnline,
		}
	}
	return config
}

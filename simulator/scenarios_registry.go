package simulator

// GetScenario creates a scenario instance by name
func GetScenario(simulator *Simulator, scenarioName string) Scenario {
	switch scenarioName {
	case "offline-online":
		return NewOfflineOnlineScenario(simulator)
	case "degraded-failover":
		return NewDegradedFailoverScenario(simulator)
	case "flapping":
		return NewFlappingScenario(simulator)
	case "direct-submit":
		return NewDirectSubmitScenario(simulator)
	case "fetch-fallback":
		return NewFetchFallbackScenario(simulator)
	default:
		return nil
	}
}

// GetAvailableScenarios returns every scenario name in run order
func GetAvailableScenarios() []string {
	return []string{
		"offline-online",
		"degraded-failover",
		"flapping",
		"direct-submit",
		"fetch-fallback",
	}
}

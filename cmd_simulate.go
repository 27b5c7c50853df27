// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/resiliencere/leadsync/simulator"
	"github.com/spf13/cobra"
)

var (
	scenarioFlag string
	outputFlag   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run scripted chaos scenarios and verify the outcome",
	Long:  "Scenarios: " + strings.Join(simulator.GetAvailableScenarios(), ", ") + ", all",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&scenarioFlag, "scenario", "all", "scenario to run")
	simulateCmd.Flags().StringVar(&outputFlag, "output", "", "JSON report file (overrides report_file)")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		cfg.ReportFile = outputFlag
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	sim, err := simulator.NewSimulator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}

	runErr := sim.Run(cmd.Context(), scenarioFlag)
	if err := sim.Close(); err != nil {
		logger.Warn("Failed to write report", "error", err)
	}
	if runErr != nil {
		return runErr
	}
	fmt.Println("🎉 Chaos simulation completed successfully!")
	return nil
}

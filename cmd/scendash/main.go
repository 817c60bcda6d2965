// Package main provides the scendash CLI: serve the dataset pipeline over
// HTTP, or run one-shot inspections against a local file.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scendash/scendash/pkg/config"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "scendash",
		Short: "Scenario dataset pipeline and chart server",
		Long: `scendash ingests a flat tabular dataset (region, scenario, variable,
year, value), narrows it with per-dimension filters, and reshapes the
filtered rows into labeled series for charting.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newDimsCmd())
	rootCmd.AddCommand(newChartCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

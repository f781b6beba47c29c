// Package main provides the advisor CLI: the HTTP API server plus offline classify and chances tools.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/admissions-advisor/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "advisor",
	Short:         "College admissions advisor",
	Long:          "Estimates admission chances from a student profile and turns free-text chat messages into structured profile records.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
}

// loadConfig reads and validates configuration from --config and the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

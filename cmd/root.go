package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"characli/internal/api"
	"characli/internal/config"
	"characli/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "characli",
	Short: "Browse the AI character catalog from your terminal",
	Long: `characli is a terminal client for the AI character catalog.

Fetch the catalog, inspect character details, pin favorites, and browse
interactively with back-navigation.

Examples:
  characli list
  characli show char_001
  characli browse
  characli favorites list`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	verbose     bool
	baseURLFlag string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show request diagnostics")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Override the catalog base URL")
}

// effectiveConfig layers defaults, environment, and the --base-url flag.
func effectiveConfig() *config.Config {
	cfg := config.Load()
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	return cfg
}

// newAPIClient builds the request client from the effective configuration.
func newAPIClient(cfg *config.Config) *api.Client {
	return api.New(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger.New(verbose)),
	)
}

// Package cmd implements the julius CLI commands.
package cmd

import (
	"fmt"
	"os"

	"julius/internal/config"
	"julius/internal/service"
	"julius/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "julius",
	Short: "Personal daily allowance tracker",
	Long:  "Track a daily spending allowance: log expenses and income, watch the balance renew on your budget cycle.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Override the ledger data directory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress decorative output")
}

// loadConfigOrDefault loads config, applying the --data-dir override.
// Commands always get a usable config even if the file is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg
}

// openService is the shared store/service opening path used by all
// commands. The returned store must be closed by the caller.
func openService() (*service.Service, *store.Store, config.Config, error) {
	cfg := loadConfigOrDefault()

	if err := os.MkdirAll(config.DataDir(cfg), 0o750); err != nil {
		return nil, nil, cfg, fmt.Errorf("creating data directory: %w", err)
	}

	st, err := store.Open(config.DBPath(cfg))
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("opening ledger database: %w", err)
	}

	return service.New(st, nil), st, cfg, nil
}

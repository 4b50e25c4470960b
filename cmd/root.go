package cmd

import (
	"fmt"
	"os"

	"library-ingest/core/config"
	"library-ingest/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "library-ingest",
	Short: "Library CSV ingestion service",
	Long: `Library Ingest loads author/book CSV files into a relational database.
Rows that already exist are skipped; everything else is inserted in a single
transaction that rolls back on the first error.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the logger every command uses.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

package command

// root.go wires the mimoctl root command and the shared database setup used
// by the maintenance subcommands.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mimo/database"
	"mimo/internal/config"
	"mimo/internal/logger"

	"github.com/spf13/cobra"
)

var (
	databaseURL string // overrides DATABASE_URL
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "mimoctl",
	Short: "mimoctl - MIMO Movies maintenance tool",
	Long: `mimoctl manages the MIMO Movies database:
- Apply or roll back schema migrations
- Load the demo dataset
- Drop every table

Configuration is read from the environment (and .env when present).`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (default $DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig() (*config.Config, *slog.Logger, error) {
	if databaseURL != "" {
		if err := os.Setenv("DATABASE_URL", databaseURL); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load config: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return cfg, logger.New(os.Stderr, level, "text"), nil
}

func connect(cmd *cobra.Command, cfg *config.Config, log *slog.Logger) (*database.DB, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	return database.Connect(ctx, cfg, log)
}

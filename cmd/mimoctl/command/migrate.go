package command

import (
	"fmt"

	"mimo/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Schema migration commands",
	Long:  `Apply, roll back or inspect the embedded schema migrations`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsTable, log); err != nil {
			return err
		}
		color.Green("✓ Migrations applied")
		return printVersion(cfg.DatabaseURL, cfg.MigrationsTable)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsTable, log); err != nil {
			return err
		}
		color.Green("✓ Migrations rolled back")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		return printVersion(cfg.DatabaseURL, cfg.MigrationsTable)
	},
}

func printVersion(dsn, table string) error {
	version, dirty, err := database.MigrationVersion(dsn, table)
	if err != nil {
		return err
	}
	fmt.Printf("Schema version: %d\n", version)
	if dirty {
		color.Red("Schema is dirty: a migration failed half-way, fix it manually")
	}
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}

package command

import (
	"fmt"

	"mimo/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop every table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset drops all data, pass --yes to confirm")
		}
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsTable, log); err != nil {
			return err
		}
		color.Yellow("✓ All tables dropped")
		fmt.Println("Run `mimoctl seed` to recreate the schema and load demo data.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm dropping all tables")
	rootCmd.AddCommand(resetCmd)
}

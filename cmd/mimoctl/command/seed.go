package command

import (
	"fmt"

	"mimo/database"
	"mimo/database/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with the demo dataset",
	Long: `Apply pending migrations, truncate every table and insert the demo users,
movies, ratings and watchlist items. Prints the API keys of the demo users.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsTable, log); err != nil {
			return err
		}

		db, err := connect(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Reset(cmd.Context()); err != nil {
			return err
		}
		summary, err := seed.Run(cmd.Context(), db.Gorm)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}

		color.Green("✓ Database seeded")
		fmt.Printf("Users: %d  Movies: %d  Ratings: %d  Watchlist items: %d\n",
			len(summary.Users), summary.Movies, summary.Ratings, summary.WatchlistItems)
		fmt.Println()
		fmt.Println("API keys:")
		for _, u := range summary.Users {
			fmt.Printf("  %-12s %s\n", u.Username, color.CyanString(u.APIKey))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

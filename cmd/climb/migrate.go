package main

import (
	"context"
	"fmt"

	"github.com/jonathan/climb/internal/config"
	"github.com/jonathan/climb/internal/db"
	"github.com/spf13/cobra"
)

var migrateDatabaseURL string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Applies the bundled SQL migrations in order. Migrations are idempotent and safe to re-run.",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migrateDatabaseURL == "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		migrateDatabaseURL = cfg.DatabaseURL
	}
	if migrateDatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set (set DATABASE_URL environment variable or use --db-url flag)")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, migrateDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	applied, err := database.Migrate(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range applied {
		_, _ = fmt.Fprintf(out, "applied %s\n", name)
	}
	_, _ = fmt.Fprintf(out, "Successfully applied %d migration(s)\n", len(applied))
	return nil
}

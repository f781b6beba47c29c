package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/admissions-advisor/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the PostgreSQL schema",
	Long:  "Applies the embedded schema to the database named by database.url (DATABASE_URL). Safe to run repeatedly.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}

	database, err := db.Connect(cmd.Context(), cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date") //nolint:errcheck // writing to stdout
	return nil
}

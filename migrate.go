package main

import (
	"github.com/spf13/cobra"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/db"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd, "migrations applied", db.RunMigrations)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd, "migration rolled back", db.RollbackMigration)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print migration status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd, "migration status printed", db.MigrationStatus)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

func withDB(cmd *cobra.Command, done string, fn db.MigrationFunc) error {
	ctx := cmd.Context()

	_, log, dbConn, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer dbConn.Close()

	if err := fn(ctx, dbConn); err != nil {
		return err
	}

	log.Info(done, zap.String("command", cmd.Name()))
	return nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xanke/disney-sns/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply, inspect or roll back the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending SQL migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := database.RunMigrations(cmd.Context(), db); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "sql migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down <version>",
	Short: "Roll back one applied migration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil || version <= 0 {
			return fmt.Errorf("invalid version %q", args[0])
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := database.RollbackMigration(cmd.Context(), db, version); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migration %06d rolled back\n", version)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the schema policy and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		status, err := database.GetSchemaStatus(cmd.Context(), db, cfg)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mode=%s env=%s run_sql=%v run_auto=%v\n",
			status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate)
		fmt.Fprintf(out, "applied: %v\n", status.AppliedVersions)
		fmt.Fprintf(out, "ledger index %s present: %v\n", database.LedgerIndex, status.LedgerIndexPresent)
		for _, m := range status.PendingMigrations {
			fmt.Fprintf(out, "pending: %s\n", m.String())
		}
		return nil
	},
}

var migrateAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Run GORM AutoMigrate for every model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.DBSchemaMode = database.SchemaModeAuto
		db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := database.ApplySchema(cmd.Context(), db, cfg); err != nil {
			return fmt.Errorf("auto schema apply failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "automigrations applied")
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd, migrateAutoCmd)
	rootCmd.AddCommand(migrateCmd)
}

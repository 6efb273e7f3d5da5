package cmd

import (
	"fmt"

	"github.com/killallgit/seispick/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the pick database schema.

Available subcommands:
  up      - Create or update the events and picks tables
  status  - Show which tables exist and how many rows they hold`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the database schema",
	Long: `Create the events and picks tables, or add any columns and indexes
they are missing. Existing rows are never modified.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows schema status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  `Display each managed table, whether it exists and its row count.`,
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Database schema is up to date (%s)\n", cfg.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Open without migrating so missing tables are reported as such
	db, err := database.InitializeWithTimeout(cfg.Database.Path, cfg.Database.Verbose, cfg.Database.BusyTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	statuses, err := db.Status(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, repeatString("=", 50))
	for _, s := range statuses {
		if !s.Exists {
			fmt.Fprintf(out, "  %-10s pending\n", s.Name)
			continue
		}
		fmt.Fprintf(out, "  %-10s applied (%d rows)\n", s.Name, s.Rows)
	}
	return nil
}

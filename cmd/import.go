package cmd

import (
	"fmt"

	"github.com/killallgit/seispick/internal/services/events"
	"github.com/spf13/cobra"
)

// importCmd seeds the events table
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Seed the events table from the events directory",
	Long: `Scan the events directory and insert a row for every event that has a
readable metadata.json. Existing rows get fresh reference pick counts and
keep their user pick counter.

Example:
  seispick import
  SEISPICK_EVENTS_DIR=/data/events seispick import`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := events.NewService(events.NewRepository(db.DB), events.NewFileStore(cfg.Events.Dir))
	n, err := svc.Import(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events from %s\n", n, cfg.Events.Dir)
	return nil
}

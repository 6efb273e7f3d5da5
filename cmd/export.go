package cmd

import (
	"fmt"

	"github.com/killallgit/seispick/internal/services/dataset"
	"github.com/killallgit/seispick/internal/services/picks"
	"github.com/spf13/cobra"
)

var (
	exportOut       string
	exportEventID   string
	exportEffective bool
)

// exportCmd writes the pick log to Parquet
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the pick log to a Parquet file",
	Long: `Write pick rows to a Parquet file for offline training and analysis.

By default every row of the append-only log is written. With --effective
only each channel's current non-null pick is kept.

Example:
  seispick export --out picks.parquet
  seispick export --out ev1.parquet --event ev1 --effective`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output Parquet file")
	exportCmd.Flags().StringVar(&exportEventID, "event", "", "export a single event")
	exportCmd.Flags().BoolVar(&exportEffective, "effective", false, "export effective picks only")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := dataset.NewService(picks.NewRepository(db.DB), cfg.Export.Compression)
	n, err := svc.ExportPicks(cmd.Context(), exportOut, dataset.ExportOptions{
		EventID:       exportEventID,
		EffectiveOnly: exportEffective,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d picks to %s\n", n, exportOut)
	return nil
}

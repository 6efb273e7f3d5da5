package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/killallgit/seispick/internal/models"
	"github.com/killallgit/seispick/internal/services/picks"
	"github.com/killallgit/seispick/pkg/logger"
	"github.com/parquet-go/parquet-go"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	source      PickSource
	compression string
	log         *slog.Logger
}

// NewService creates a new dataset service. compression is one of
// zstd, snappy, gzip, lz4 or none.
func NewService(source PickSource, compression string) Service {
	return &ServiceImpl{
		source:      source,
		compression: compression,
		log:         logger.Component("dataset"),
	}
}

// ExportPicks writes the selected picks to path
func (s *ServiceImpl) ExportPicks(ctx context.Context, path string, opts ExportOptions) (int, error) {
	filter := picks.Filter{EventID: opts.EventID}

	var (
		rows []models.Pick
		err  error
	)
	if opts.EffectiveOnly {
		rows, err = s.source.ListEffectivePicks(ctx, filter)
	} else {
		rows, err = s.source.ListPicks(ctx, filter)
	}
	if err != nil {
		return 0, err
	}

	if err := writeRows(path, rows, s.compression); err != nil {
		return 0, err
	}

	s.log.Info("exported picks",
		"path", path,
		"rows", len(rows),
		"event_id", opts.EventID,
		"effective_only", opts.EffectiveOnly)
	return len(rows), nil
}

func writeRows(path string, picks []models.Pick, compression string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	writer := parquet.NewGenericWriter[PickRow](f, parquet.Compression(Codec(compression)))

	rows := make([]PickRow, len(picks))
	for i := range picks {
		rows[i] = PickToRow(&picks[i])
	}

	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			writer.Close()
			f.Close()
			return fmt.Errorf("write rows: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close writer: %w", err)
	}
	return f.Close()
}

package dataset

import (
	"context"

	"github.com/killallgit/seispick/internal/models"
	"github.com/killallgit/seispick/internal/services/picks"
)

// Service defines the interface for dataset export operations
type Service interface {
	// ExportPicks writes picks to a Parquet file at path and returns the row count
	ExportPicks(ctx context.Context, path string, opts ExportOptions) (int, error)
}

// PickSource is the part of the picks repository the exporter reads
type PickSource interface {
	ListPicks(ctx context.Context, filter picks.Filter) ([]models.Pick, error)
	ListEffectivePicks(ctx context.Context, filter picks.Filter) ([]models.Pick, error)
}

// ExportOptions selects which picks are exported
type ExportOptions struct {
	// EventID restricts the export to one event when set
	EventID string

	// EffectiveOnly exports the current non-null pick per channel
	// instead of the full log
	EffectiveOnly bool
}

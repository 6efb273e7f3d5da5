package picks

import (
	"context"

	"github.com/killallgit/seispick/internal/models"
	"github.com/killallgit/seispick/internal/services/events"
)

// Repository defines data access for the append-only picks log
type Repository interface {
	// GetPicks returns the effective pick sample per channel. Channels whose
	// effective row is a deletion map to nil.
	GetPicks(ctx context.Context, eventID string) (map[string]*int64, error)

	// SavePicks appends rows for channels whose value changed and updates the
	// event's n_user_picks counter, all in one transaction
	SavePicks(ctx context.Context, eventID, traceStartTime string, picks map[string]*int64, userID string) (*SaveResult, error)

	// CountEffectivePicks returns the number of non-null effective picks
	CountEffectivePicks(ctx context.Context, eventID string) (int, error)

	// ListPicks returns raw log rows ordered by id
	ListPicks(ctx context.Context, filter Filter) ([]models.Pick, error)

	// ListEffectivePicks returns the non-null effective row of every
	// (event, channel) pair matching the filter
	ListEffectivePicks(ctx context.Context, filter Filter) ([]models.Pick, error)
}

// Service defines pick operations used by the HTTP surface
type Service interface {
	// GetPicks returns the effective picks for an event
	GetPicks(ctx context.Context, eventID string) (map[string]*int64, error)

	// SavePicks records a submitted pick mapping for an event
	SavePicks(ctx context.Context, eventID string, req SaveRequest) (*SaveResult, error)

	// EventPage returns the event metadata with the effective picks merged in
	EventPage(ctx context.Context, eventID string) (events.Metadata, error)
}

package events

import (
	"context"

	"github.com/killallgit/seispick/internal/models"
)

// Store reads the read-only event directory tree
type Store interface {
	// LoadMetadata decodes events/{eventID}/metadata.json
	LoadMetadata(ctx context.Context, eventID string) (Metadata, error)

	// LoadChannel decodes events/{eventID}/{channel}.npy
	LoadChannel(ctx context.Context, eventID, channel string) (*Samples, error)

	// ListEventIDs lists the event directories
	ListEventIDs(ctx context.Context) ([]string, error)
}

// Repository defines data access for the events table
type Repository interface {
	// ListSummaries returns every event row in storage order
	ListSummaries(ctx context.Context) ([]models.Event, error)

	// Get returns a single event row
	Get(ctx context.Context, eventID string) (*models.Event, error)

	// RandomUnpicked selects an event with n_user_picks = 0 uniformly at random
	RandomUnpicked(ctx context.Context) (string, error)

	// RandomPicked selects an event with n_user_picks <> 0 uniformly at random
	RandomPicked(ctx context.Context) (string, error)

	// Upsert inserts an event or refreshes its reference columns, keeping n_user_picks
	Upsert(ctx context.Context, event *models.Event) error
}

// Service defines event-level operations used by the HTTP surface and the CLI
type Service interface {
	// Dashboard aggregates counts over all events
	Dashboard(ctx context.Context) (*Dashboard, error)

	// RandomUnpicked returns the ID of a random event without user picks
	RandomUnpicked(ctx context.Context) (string, error)

	// RandomPicked returns the ID of a random event with user picks
	RandomPicked(ctx context.Context) (string, error)

	// Import seeds the events table from the event directory tree
	Import(ctx context.Context) (int, error)
}

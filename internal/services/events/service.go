package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/killallgit/seispick/pkg/logger"
)

// EventService implements Service on top of a Repository and a Store
type EventService struct {
	repo  Repository
	store Store
	log   *slog.Logger
}

// NewService creates a new event service
func NewService(repo Repository, store Store) *EventService {
	return &EventService{
		repo:  repo,
		store: store,
		log:   logger.Component("events"),
	}
}

// Dashboard aggregates counts over all events
func (s *EventService) Dashboard(ctx context.Context) (*Dashboard, error) {
	rows, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(rows), nil
}

// RandomUnpicked returns the ID of a random event without user picks
func (s *EventService) RandomUnpicked(ctx context.Context) (string, error) {
	return s.repo.RandomUnpicked(ctx)
}

// RandomPicked returns the ID of a random event with user picks
func (s *EventService) RandomPicked(ctx context.Context) (string, error) {
	return s.repo.RandomPicked(ctx)
}

// Import upserts an events row for every event directory that has readable
// metadata. Directories with broken metadata are logged and skipped.
func (s *EventService) Import(ctx context.Context) (int, error) {
	ids, err := s.store.ListEventIDs(ctx)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		metadata, err := s.store.LoadMetadata(ctx, id)
		if err != nil {
			s.log.Warn("skipping event", "event_id", id, "error", err)
			continue
		}
		event, err := metadata.Event(id)
		if err != nil {
			s.log.Warn("skipping event with invalid metadata", "event_id", id, "error", err)
			continue
		}
		if err := s.repo.Upsert(ctx, event); err != nil {
			return imported, fmt.Errorf("importing events: %w", err)
		}
		imported++
	}

	s.log.Info("imported events", "count", imported, "found", len(ids))
	return imported, nil
}

package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/seispick/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new events repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// ListSummaries returns every event row without imposing an order
func (r *RepositoryImpl) ListSummaries(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// Get returns a single event row
func (r *RepositoryImpl) Get(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return &event, nil
}

// RandomUnpicked selects an event with n_user_picks = 0
func (r *RepositoryImpl) RandomUnpicked(ctx context.Context) (string, error) {
	return r.random(ctx, "n_user_picks = 0")
}

// RandomPicked selects an event with n_user_picks <> 0
func (r *RepositoryImpl) RandomPicked(ctx context.Context) (string, error) {
	return r.random(ctx, "n_user_picks <> 0")
}

func (r *RepositoryImpl) random(ctx context.Context, condition string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where(condition).
		Order("RANDOM()").
		Limit(1).
		Pluck("event_id", &ids).Error
	if err != nil {
		return "", fmt.Errorf("selecting random event: %w", err)
	}
	if len(ids) == 0 {
		return "", ErrNoEventAvailable
	}
	return ids[0], nil
}

// Upsert inserts the event, or refreshes its reference columns when it
// already exists. n_user_picks is never touched on conflict.
func (r *RepositoryImpl) Upsert(ctx context.Context, event *models.Event) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reference_pick_channel_id", "trace_start_time", "n_reference_picks"}),
	}).Create(event).Error
	if err != nil {
		return fmt.Errorf("upserting event %s: %w", event.EventID, err)
	}
	return nil
}

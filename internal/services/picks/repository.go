package picks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/killallgit/seispick/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements Repository with GORM
type RepositoryImpl struct {
	db          *gorm.DB
	counterMode CounterMode
	now         func() time.Time
}

// RepositoryOption configures a RepositoryImpl
type RepositoryOption func(*RepositoryImpl)

// WithCounterMode selects the n_user_picks policy
func WithCounterMode(mode CounterMode) RepositoryOption {
	return func(r *RepositoryImpl) {
		if mode != "" {
			r.counterMode = mode
		}
	}
}

// WithClock overrides the source of created_time
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *RepositoryImpl) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRepository creates a new picks repository
func NewRepository(db *gorm.DB, opts ...RepositoryOption) Repository {
	r := &RepositoryImpl{
		db:          db,
		counterMode: CounterSubmitted,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// effective reduces log rows to the latest row per (event, channel).
// Later created_time wins; equal times go to the higher id.
func effective(rows []models.Pick) []models.Pick {
	type key struct{ event, channel string }
	latest := make(map[key]models.Pick, len(rows))
	for _, row := range rows {
		k := key{row.EventID, row.ChannelID}
		cur, ok := latest[k]
		if !ok || row.CreatedTime.After(cur.CreatedTime) ||
			(row.CreatedTime.Equal(cur.CreatedTime) && row.ID > cur.ID) {
			latest[k] = row
		}
	}

	out := make([]models.Pick, 0, len(latest))
	for _, row := range latest {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func loadRows(db *gorm.DB, filter Filter) ([]models.Pick, error) {
	var rows []models.Pick
	q := db.Model(&models.Pick{})
	if filter.EventID != "" {
		q = q.Where("event_id = ?", filter.EventID)
	}
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func effectiveMap(db *gorm.DB, eventID string) (map[string]*int64, error) {
	rows, err := loadRows(db, Filter{EventID: eventID})
	if err != nil {
		return nil, err
	}
	picks := make(map[string]*int64)
	for _, row := range effective(rows) {
		picks[row.ChannelID] = row.PickSample
	}
	return picks, nil
}

func countNonNull(picks map[string]*int64) int {
	n := 0
	for _, v := range picks {
		if v != nil {
			n++
		}
	}
	return n
}

// GetPicks returns the effective pick sample per channel
func (r *RepositoryImpl) GetPicks(ctx context.Context, eventID string) (map[string]*int64, error) {
	picks, err := effectiveMap(r.db.WithContext(ctx), eventID)
	if err != nil {
		return nil, fmt.Errorf("getting picks for %s: %w", eventID, err)
	}
	return picks, nil
}

// CountEffectivePicks returns the number of non-null effective picks
func (r *RepositoryImpl) CountEffectivePicks(ctx context.Context, eventID string) (int, error) {
	picks, err := r.GetPicks(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return countNonNull(picks), nil
}

// SavePicks appends a row for every submitted channel whose value differs
// from its effective pick, then rewrites the event counter.
func (r *RepositoryImpl) SavePicks(ctx context.Context, eventID, traceStartTime string, picks map[string]*int64, userID string) (*SaveResult, error) {
	result := &SaveResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := effectiveMap(tx, eventID)
		if err != nil {
			return err
		}

		channels := make([]string, 0, len(picks))
		for ch := range picks {
			channels = append(channels, ch)
		}
		sort.Strings(channels)

		now := r.now().UTC()
		var rows []models.Pick
		for _, ch := range channels {
			value := picks[ch]
			prev, ok := current[ch]
			if ok && sameSample(prev, value) {
				continue
			}
			rows = append(rows, models.Pick{
				EventID:        eventID,
				ChannelID:      ch,
				TraceStartTime: traceStartTime,
				PickSample:     value,
				UserID:         userID,
				CreatedTime:    now,
			})
			current[ch] = value
		}

		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		result.Inserted = len(rows)

		switch r.counterMode {
		case CounterEffective:
			result.NUserPicks = countNonNull(current)
		default:
			result.NUserPicks = len(picks)
		}

		return tx.Model(&models.Event{}).
			Where("event_id = ?", eventID).
			Update("n_user_picks", result.NUserPicks).Error
	})
	if err != nil {
		return nil, fmt.Errorf("saving picks for %s: %w", eventID, err)
	}
	return result, nil
}

func sameSample(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ListPicks returns raw log rows ordered by id
func (r *RepositoryImpl) ListPicks(ctx context.Context, filter Filter) ([]models.Pick, error) {
	rows, err := loadRows(r.db.WithContext(ctx), filter)
	if err != nil {
		return nil, fmt.Errorf("listing picks: %w", err)
	}
	return rows, nil
}

// ListEffectivePicks returns the non-null effective rows ordered by id
func (r *RepositoryImpl) ListEffectivePicks(ctx context.Context, filter Filter) ([]models.Pick, error) {
	rows, err := loadRows(r.db.WithContext(ctx), filter)
	if err != nil {
		return nil, fmt.Errorf("listing effective picks: %w", err)
	}

	out := make([]models.Pick, 0, len(rows))
	for _, row := range effective(rows) {
		if row.PickSample != nil {
			out = append(out, row)
		}
	}
	return out, nil
}

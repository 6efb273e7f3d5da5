package picks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/killallgit/seispick/internal/services/events"
	apperrors "github.com/killallgit/seispick/pkg/errors"
	"github.com/killallgit/seispick/pkg/logger"
	"github.com/killallgit/seispick/pkg/metrics"
)

// PickService implements Service
type PickService struct {
	repo    Repository
	store   events.Store
	metrics *metrics.Manager
	log     *slog.Logger
}

// NewService creates a new pick service. m may be nil.
func NewService(repo Repository, store events.Store, m *metrics.Manager) *PickService {
	return &PickService{
		repo:    repo,
		store:   store,
		metrics: m,
		log:     logger.Component("picks"),
	}
}

// GetPicks returns the effective picks for an event
func (s *PickService) GetPicks(ctx context.Context, eventID string) (map[string]*int64, error) {
	return s.repo.GetPicks(ctx, eventID)
}

// SavePicks records the submitted mapping. The trace start time always
// comes from the event's metadata document.
func (s *PickService) SavePicks(ctx context.Context, eventID string, req SaveRequest) (*SaveResult, error) {
	if err := events.ValidateIdentifier(eventID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		field := "picks"
		if errors.Is(err, ErrMissingUserID) {
			field = "user_id"
		}
		return nil, apperrors.MissingFieldError(field).WithCause(err)
	}

	metadata, err := s.store.LoadMetadata(ctx, eventID)
	if err != nil {
		return nil, err
	}
	start, err := metadata.TraceStartTime()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "event metadata has no usable trace_start_time")
	}

	result, err := s.repo.SavePicks(ctx, eventID, start, req.Picks, *req.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError("save picks", err)
	}

	s.metrics.RecordPickSave(result.Inserted)
	s.log.Info("saved picks",
		"event_id", eventID,
		"user_id", *req.UserID,
		"submitted", len(req.Picks),
		"inserted", result.Inserted,
		"n_user_picks", result.NUserPicks)

	return result, nil
}

// EventPage returns the metadata document with "picks" replaced by the
// effective picks
func (s *PickService) EventPage(ctx context.Context, eventID string) (events.Metadata, error) {
	metadata, err := s.store.LoadMetadata(ctx, eventID)
	if err != nil {
		return nil, err
	}

	picks, err := s.repo.GetPicks(ctx, eventID)
	if err != nil {
		return nil, apperrors.DatabaseError("get picks", err)
	}

	page := metadata.Clone()
	page[events.KeyPicks] = picks
	return page, nil
}

package events

import (
	"context"
	"testing"

	"github.com/killallgit/seispick/internal/database"
	"github.com/killallgit/seispick/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return db.DB
}

func seedEvents(t *testing.T, db *gorm.DB, events ...models.Event) {
	t.Helper()
	for i := range events {
		require.NoError(t, db.Create(&events[i]).Error)
	}
}

func TestRepository_ListSummaries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	events, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	seedEvents(t, db,
		models.Event{EventID: "e1", NReferencePicks: 2},
		models.Event{EventID: "e2", NReferencePicks: 1, NUserPicks: 3},
	)

	events, err = repo.ListSummaries(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestRepository_Get(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	seedEvents(t, db, models.Event{EventID: "e1", TraceStartTime: "t0"})

	event, err := repo.Get(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "t0", event.TraceStartTime)

	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepository_Random(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.RandomUnpicked(ctx)
	assert.ErrorIs(t, err, ErrNoEventAvailable)
	_, err = repo.RandomPicked(ctx)
	assert.ErrorIs(t, err, ErrNoEventAvailable)

	seedEvents(t, db,
		models.Event{EventID: "u1"},
		models.Event{EventID: "u2"},
		models.Event{EventID: "p1", NUserPicks: 2},
	)

	for i := 0; i < 20; i++ {
		id, err := repo.RandomUnpicked(ctx)
		require.NoError(t, err)
		assert.Contains(t, []string{"u1", "u2"}, id)

		id, err = repo.RandomPicked(ctx)
		require.NoError(t, err)
		assert.Equal(t, "p1", id)
	}
}

func TestRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Event{EventID: "e1", TraceStartTime: "t0", NReferencePicks: 1}))

	// user picks accumulated since the first import must survive a re-import
	require.NoError(t, db.Model(&models.Event{}).Where("event_id = ?", "e1").Update("n_user_picks", 4).Error)
	require.NoError(t, repo.Upsert(ctx, &models.Event{EventID: "e1", TraceStartTime: "t1", ReferencePickChannelID: "HHZ", NReferencePicks: 2}))

	event, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "t1", event.TraceStartTime)
	assert.Equal(t, "HHZ", event.ReferencePickChannelID)
	assert.Equal(t, 2, event.NReferencePicks)
	assert.Equal(t, 4, event.NUserPicks)
}

package integration_test

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api"
	"github.com/killallgit/seispick/api/waveform"
	"github.com/killallgit/seispick/internal/database"
	"github.com/killallgit/seispick/internal/models"
	"github.com/killallgit/seispick/internal/services/events"
	"github.com/killallgit/seispick/pkg/config"
	"github.com/sbinet/npyio/npy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewSuite struct {
	t      *testing.T
	db     *database.DB
	router *gin.Engine
}

func writeEvent(t *testing.T, root, eventID, metadata string, channels map[string]any) {
	t.Helper()

	dir := filepath.Join(root, eventID)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(metadata), 0644))
	for name, data := range channels {
		f, err := os.Create(filepath.Join(dir, name+".npy"))
		require.NoError(t, err)
		require.NoError(t, npy.Write(f, data))
		require.NoError(t, f.Close())
	}
}

func setupReviewSuite(t *testing.T, counterMode string) *reviewSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eventsDir := t.TempDir()
	writeEvent(t, eventsDir, "ev1",
		`{"trace_start_time": "2020-01-01T00:00:00.000000", "reference_pick_channel_id": "HHZ", "n_reference_picks": 2, "magnitude": 3.25}`,
		map[string]any{
			"HHZ": []float32{0.5, -1, 2, 0, 4},
			"HHN": []float64{1, 2, 3},
		})
	writeEvent(t, eventsDir, "ev2",
		`{"trace_start_time": "2020-01-02T00:00:00.000000", "reference_pick_channel_id": "HHE", "n_reference_picks": 1}`,
		nil)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	store := events.NewFileStore(eventsDir)
	n, err := events.NewService(events.NewRepository(db.DB), store).Import(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	cfg := &config.Config{
		Server:     config.ServerConfig{Host: "127.0.0.1", Port: 5000, MaxBodyBytes: 1 << 20},
		Database:   config.DatabaseConfig{Path: ":memory:"},
		Events:     config.EventsConfig{Dir: eventsDir},
		Waveform:   config.WaveformConfig{SampleRate: 100, Compress: true},
		Picks:      config.PicksConfig{CounterMode: counterMode},
		Security:   config.SecurityConfig{EnableRequestID: true},
		Monitoring: config.MonitoringConfig{Enabled: true, MetricsPath: "/metrics"},
	}

	server := api.NewServer(cfg)
	server.SetDatabase(db)
	require.NoError(t, server.Initialize())

	return &reviewSuite{t: t, db: db, router: server.Engine()}
}

func (s *reviewSuite) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *reviewSuite) event(id string) models.Event {
	s.t.Helper()

	var event models.Event
	require.NoError(s.t, s.db.DB.Where("event_id = ?", id).First(&event).Error)
	return event
}

func (s *reviewSuite) pickRows(id string) []models.Pick {
	s.t.Helper()

	var rows []models.Pick
	require.NoError(s.t, s.db.DB.Where("event_id = ?", id).Order("id").Find(&rows).Error)
	return rows
}

func TestReviewFlow(t *testing.T) {
	s := setupReviewSuite(t, config.CounterModeSubmitted)

	// Nothing picked yet
	w := s.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0 of 2 events picked (0.0%)")
	assert.Contains(t, w.Body.String(), "0 user picks, 3 reference picks")

	w = s.do(http.MethodGet, "/random_picked", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/random_unpicked", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, []string{"/event/ev1", "/event/ev2"}, w.Header().Get("Location"))

	// Event page before any picks
	w = s.do(http.MethodGet, "/event/ev1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"picks":{}`)
	assert.Contains(t, w.Body.String(), `"magnitude":3.25`)

	// First submission
	w = s.do(http.MethodPost, "/save_picks/ev1", `{"picks": {"HHZ": 3, "HHN": null}, "user_id": "alice"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	rows := s.pickRows("ev1")
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "alice", row.UserID)
		assert.Equal(t, "2020-01-01T00:00:00.000000", row.TraceStartTime)
	}
	assert.Equal(t, 2, s.event("ev1").NUserPicks)

	// Resubmitting the same picks appends nothing
	w = s.do(http.MethodPost, "/save_picks/ev1", `{"picks": {"HHZ": 3, "HHN": null}, "user_id": "bob"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, s.pickRows("ev1"), 2)

	// Moving one pick appends one row
	time.Sleep(2 * time.Millisecond)
	w = s.do(http.MethodPost, "/save_picks/ev1", `{"picks": {"HHZ": 4, "HHN": null}, "user_id": "bob"}`)
	require.Equal(t, http.StatusOK, w.Code)
	rows = s.pickRows("ev1")
	require.Len(t, rows, 3)
	assert.Equal(t, "bob", rows[2].UserID)
	require.NotNil(t, rows[2].PickSample)
	assert.Equal(t, int64(4), *rows[2].PickSample)

	// Effective picks show up on the event page
	w = s.do(http.MethodGet, "/event/ev1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"HHZ":4`)
	assert.Contains(t, w.Body.String(), `"HHN":null`)

	w = s.do(http.MethodGet, "/random_picked", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/event/ev1", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/random_unpicked", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/event/ev2", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/", "")
	assert.Contains(t, w.Body.String(), "1 of 2 events picked (50.0%)")
	assert.Contains(t, w.Body.String(), "2 user picks, 3 reference picks")

	// Other events are untouched
	assert.Empty(t, s.pickRows("ev2"))
	assert.Equal(t, 0, s.event("ev2").NUserPicks)
}

func TestSavePicks_Rejections(t *testing.T) {
	s := setupReviewSuite(t, config.CounterModeSubmitted)

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
	}{
		{"missing picks", "/save_picks/ev1", `{"user_id": "alice"}`, http.StatusBadRequest},
		{"missing user", "/save_picks/ev1", `{"picks": {"HHZ": 1}}`, http.StatusBadRequest},
		{"malformed json", "/save_picks/ev1", `{"picks":`, http.StatusBadRequest},
		{"unknown event", "/save_picks/nope", `{"picks": {"HHZ": 1}, "user_id": "alice"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	assert.Empty(t, s.pickRows("ev1"))
	assert.Equal(t, 0, s.event("ev1").NUserPicks)
}

func TestEmptySubmissionResetsCounter(t *testing.T) {
	s := setupReviewSuite(t, config.CounterModeSubmitted)

	w := s.do(http.MethodPost, "/save_picks/ev1", `{"picks": {"HHZ": 3}, "user_id": "alice"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.event("ev1").NUserPicks)

	w = s.do(http.MethodPost, "/save_picks/ev1", `{"picks": {}, "user_id": "alice"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, s.event("ev1").NUserPicks)
	assert.Len(t, s.pickRows("ev1"), 1)

	// The event counts as unpicked again even though its log has a pick
	w = s.do(http.MethodGet, "/random_picked", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEffectiveCounter(t *testing.T) {
	s := setupReviewSuite(t, config.CounterModeEffective)

	w := s.do(http.MethodPost, "/save_picks/ev1", `{"picks": {"HHZ": 3, "HHN": 7}, "user_id": "alice"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, s.event("ev1").NUserPicks)

	time.Sleep(2 * time.Millisecond)
	w = s.do(http.MethodPost, "/save_picks/ev1", `{"picks": {"HHN": null}, "user_id": "alice"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.event("ev1").NUserPicks)

	w = s.do(http.MethodPost, "/save_picks/ev1", `{"picks": {}, "user_id": "alice"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.event("ev1").NUserPicks)
	assert.Len(t, s.pickRows("ev1"), 3)
}

func TestWaveforms(t *testing.T) {
	s := setupReviewSuite(t, config.CounterModeSubmitted)

	t.Run("float32 channel", func(t *testing.T) {
		w := s.do(http.MethodGet, "/xy/ev1/HHZ", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<f4", w.Header().Get(waveform.DTypeHeader))

		body := w.Body.Bytes()
		require.Len(t, body, 2*5*4)
		x := make([]float32, 5)
		y := make([]float32, 5)
		for i := range x {
			x[i] = math.Float32frombits(binary.NativeEndian.Uint32(body[i*4:]))
			y[i] = math.Float32frombits(binary.NativeEndian.Uint32(body[20+i*4:]))
		}
		assert.InDeltaSlice(t, []float32{0, 0.01, 0.02, 0.03, 0.04}, x, 1e-6)
		assert.Equal(t, []float32{0.5, -1, 2, 0, 4}, y)
	})

	t.Run("float64 channel", func(t *testing.T) {
		w := s.do(http.MethodGet, "/xy/ev1/HHN", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<f8", w.Header().Get(waveform.DTypeHeader))

		body := w.Body.Bytes()
		require.Len(t, body, 2*3*8)
		assert.Equal(t, 2.0, math.Float64frombits(binary.NativeEndian.Uint64(body[24+8:])))
	})

	t.Run("missing channel", func(t *testing.T) {
		w := s.do(http.MethodGet, "/xy/ev2/HHZ", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<f4", w.Header().Get(waveform.DTypeHeader))

		body := w.Body.Bytes()
		require.Len(t, body, 16)
		x := []float32{
			math.Float32frombits(binary.NativeEndian.Uint32(body[0:])),
			math.Float32frombits(binary.NativeEndian.Uint32(body[4:])),
		}
		assert.InDeltaSlice(t, []float32{0, 0.01}, x, 1e-7)
		assert.Equal(t, make([]byte, 8), body[8:])
	})

	t.Run("metrics count requests", func(t *testing.T) {
		w := s.do(http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "seispick_waveform_fallbacks_total 1")
	})
}

func TestHealth(t *testing.T) {
	s := setupReviewSuite(t, config.CounterModeSubmitted)

	w := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

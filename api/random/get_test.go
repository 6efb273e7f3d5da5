package random

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
	"github.com/killallgit/seispick/internal/services/events"
	"github.com/stretchr/testify/assert"
)

// Mock service for testing
type mockEventService struct {
	unpicked string
	picked   string
}

func (m *mockEventService) Dashboard(ctx context.Context) (*events.Dashboard, error) {
	return events.Summarize(nil), nil
}

func (m *mockEventService) RandomUnpicked(ctx context.Context) (string, error) {
	if m.unpicked == "" {
		return "", events.ErrNoEventAvailable
	}
	return m.unpicked, nil
}

func (m *mockEventService) RandomPicked(ctx context.Context) (string, error) {
	if m.picked == "" {
		return "", events.ErrNoEventAvailable
	}
	return m.picked, nil
}

func (m *mockEventService) Import(ctx context.Context) (int, error) { return 0, nil }

func TestRandomRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		svc              *mockEventService
		path             string
		expectedStatus   int
		expectedLocation string
	}{
		{"unpicked", &mockEventService{unpicked: "ci1"}, "/random_unpicked", http.StatusFound, "/event/ci1"},
		{"picked", &mockEventService{picked: "ci2"}, "/random_picked", http.StatusFound, "/event/ci2"},
		{"id is escaped", &mockEventService{unpicked: "a b"}, "/random_unpicked", http.StatusFound, "/event/a%20b"},
		{"no unpicked event", &mockEventService{picked: "ci2"}, "/random_unpicked", http.StatusNotFound, ""},
		{"no picked event", &mockEventService{unpicked: "ci1"}, "/random_picked", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			RegisterRoutes(router, &types.Dependencies{EventService: tt.svc})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
		})
	}
}

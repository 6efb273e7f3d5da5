package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
	"github.com/killallgit/seispick/internal/models"
	"github.com/killallgit/seispick/internal/services/events"
	"github.com/killallgit/seispick/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEventService struct {
	dashboard *events.Dashboard
	err       error
}

func (m *mockEventService) Dashboard(ctx context.Context) (*events.Dashboard, error) {
	return m.dashboard, m.err
}

func (m *mockEventService) RandomUnpicked(ctx context.Context) (string, error) { return "", nil }
func (m *mockEventService) RandomPicked(ctx context.Context) (string, error)   { return "", nil }
func (m *mockEventService) Import(ctx context.Context) (int, error)           { return 0, nil }

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		svc            *mockEventService
		expectedStatus int
		expectedBody   []string
	}{
		{
			name: "renders totals",
			svc: &mockEventService{dashboard: events.Summarize([]models.Event{
				{EventID: "ci1", NReferencePicks: 3, NUserPicks: 2},
				{EventID: "ci2", NReferencePicks: 1},
			})},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"1 of 2 events picked", "2 user picks, 4 reference picks", `href="/event/ci2"`},
		},
		{
			name:           "empty database",
			svc:            &mockEventService{dashboard: events.Summarize(nil)},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"0 of 0 events picked"},
		},
		{
			name:           "database failure",
			svc:            &mockEventService{err: errors.New("disk I/O error")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			tmpl, err := web.Templates()
			require.NoError(t, err)
			router.SetHTMLTemplate(tmpl)
			RegisterRoutes(router, &types.Dependencies{EventService: tt.svc})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.expectedBody {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

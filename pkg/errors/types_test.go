package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", New(ErrCodeNotFound, "event not found"), http.StatusNotFound},
		{"invalid input", New(ErrCodeInvalidInput, "bad picks"), http.StatusBadRequest},
		{"missing field", MissingFieldError("user_id"), http.StatusBadRequest},
		{"rate limit", RateLimitError("save_picks", "5/s"), http.StatusTooManyRequests},
		{"database", DatabaseError("insert", stderrors.New("disk I/O error")), http.StatusInternalServerError},
		{"config", ConfigError("server.port", "must be between 1 and 65535"), http.StatusInternalServerError},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("loading event: %w", New(ErrCodeNotFound, "event not found")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPCode(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("no such file")
	err := Wrap(cause, ErrCodeNotFound, "metadata missing")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "no such file")
	assert.Equal(t, ErrCodeNotFound, GetCode(err))
	assert.Equal(t, ErrCodeInternal, GetCode(cause))
}

func TestConfigError(t *testing.T) {
	err := ConfigError("picks.counter_mode", `unknown mode "distinct"`)

	assert.Equal(t, ErrCodeConfigInvalid, GetCode(fmt.Errorf("invalid configuration: %w", err)))
	assert.Equal(t, "picks.counter_mode", err.Details["key"])
	assert.Contains(t, err.Error(), `unknown mode "distinct"`)
}

func TestWithDetail(t *testing.T) {
	err := MissingFieldError("user_id").WithDetail("path", "/save_picks")

	assert.Equal(t, "user_id", err.Details["field"])
	assert.Equal(t, "/save_picks", err.Details["path"])
}

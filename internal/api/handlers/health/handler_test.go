package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func ok(context.Context) error { return nil }

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
		wantBody   StatusResponse
	}{
		{
			name:       "all dependencies up",
			checks:     map[string]Pinger{"postgres": PingFunc(ok), "redis": PingFunc(ok)},
			wantStatus: http.StatusOK,
			wantBody:   StatusResponse{Status: "ok", Checks: map[string]string{"postgres": "ok", "redis": "ok"}},
		},
		{
			name: "redis down",
			checks: map[string]Pinger{
				"postgres": PingFunc(ok),
				"redis": PingFunc(func(context.Context) error {
					return errors.New("connection refused")
				}),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   StatusResponse{Status: "degraded", Checks: map[string]string{"postgres": "ok", "redis": "unavailable"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(tt.checks, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var got StatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

// cmd/worker-manager/server_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-workers/internal/common/database"
)

type fakePinger struct {
	name string
	err  error
}

func (p fakePinger) Name() string                 { return p.name }
func (p fakePinger) Ping(_ context.Context) error { return p.err }

func serve(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestOpsRouter_Health(t *testing.T) {
	rec, body := serve(t, opsRouter(fakePinger{name: "postgres", err: errors.New("down")}), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestOpsRouter_Ready(t *testing.T) {
	tests := []struct {
		name           string
		deps           []fakePinger
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "all dependencies up",
			deps:           []fakePinger{{name: "postgres"}, {name: "redis"}},
			expectedStatus: http.StatusOK,
			expectedBody:   "ready",
		},
		{
			name:           "one dependency down",
			deps:           []fakePinger{{name: "postgres"}, {name: "elasticsearch", err: errors.New("connection refused")}},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := make([]database.Pinger, 0, len(tt.deps))
			for _, d := range tt.deps {
				deps = append(deps, d)
			}

			rec, body := serve(t, opsRouter(deps...), "/ready")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedBody, body["status"])
			if tt.expectedStatus != http.StatusOK {
				failures := body["failures"].(map[string]interface{})
				assert.Equal(t, "connection refused", failures["elasticsearch"])
				assert.NotContains(t, failures, "postgres")
			}
		})
	}
}

func TestOpsRouter_Metrics(t *testing.T) {
	rec, _ := serve(t, opsRouter(), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestOpsRouter_UnknownPath(t *testing.T) {
	rec, _ := serve(t, opsRouter(), "/applications")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

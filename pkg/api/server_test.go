package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solforge/solforge/pkg/backend"
	"github.com/solforge/solforge/pkg/controller"
	"github.com/solforge/solforge/pkg/registry"
	"github.com/solforge/solforge/pkg/types"
)

func testServer(t *testing.T) (*Server, *controller.Controller) {
	t.Helper()
	ctrl := controller.New(controller.Config{
		Backend: backend.NewSimBackendWithConfig(backend.SimConfig{
			SpawnDelay: time.Millisecond,
			StopDelay:  time.Millisecond,
		}),
		Environment: types.EnvironmentConfig{
			Kind:    types.EnvironmentLocalDevnet,
			RPCPort: 8899,
			WSPort:  8900,
		},
		SettleDelay: time.Millisecond,
	})
	return NewServer(ctrl, registry.New(), nil), ctrl
}

// TestHealthHandler tests the /health endpoint
func TestHealthHandler(t *testing.T) {
	s, _ := testServer(t)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{"GET request succeeds", http.MethodGet, http.StatusOK},
		{"POST request fails", http.MethodPost, http.StatusMethodNotAllowed},
		{"DELETE request fails", http.MethodDelete, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			w := httptest.NewRecorder()

			s.GetHandler().ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp HealthResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "healthy", resp.Status)
				assert.NotZero(t, resp.Timestamp)
			}
		})
	}
}

// TestReadyHandler verifies readiness tracks the validator lifecycle
func TestReadyHandler(t *testing.T) {
	s, ctrl := testServer(t)

	// Stopped: not ready
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	s.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ReadyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "not ready", resp.Status)
	assert.Equal(t, "stopped", resp.Checks["controller"])

	// Running: ready
	require.NoError(t, ctrl.Start(context.Background()))
	defer func() { _ = ctrl.Stop(context.Background()) }()

	w = httptest.NewRecorder()
	s.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	resp = ReadyResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "running", resp.Checks["controller"])
	assert.Equal(t, "alive", resp.Checks["process"])
}

// TestStatusHandler verifies the snapshot carries status, environments,
// and metrics while running
func TestStatusHandler(t *testing.T) {
	s, ctrl := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	s.GetHandler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, types.StateStopped, resp.Status.State)
	assert.False(t, resp.Healthy)
	assert.Nil(t, resp.Metrics)
	assert.Len(t, resp.Environments, 2)

	require.NoError(t, ctrl.Start(context.Background()))
	defer func() { _ = ctrl.Stop(context.Background()) }()

	w = httptest.NewRecorder()
	s.GetHandler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp = StatusResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, types.StateRunning, resp.Status.State)
	assert.True(t, resp.Healthy)
	require.NotNil(t, resp.Metrics)
}

// TestMetricsEndpoint verifies /metrics serves the Prometheus exposition
func TestMetricsEndpoint(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "solforge_validator_starts_total")
}

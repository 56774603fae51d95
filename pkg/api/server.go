package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/solforge/solforge/pkg/controller"
	"github.com/solforge/solforge/pkg/health"
	"github.com/solforge/solforge/pkg/metrics"
	"github.com/solforge/solforge/pkg/registry"
	"github.com/solforge/solforge/pkg/rpc"
	"github.com/solforge/solforge/pkg/types"
)

// Server exposes the supervisor's status over HTTP for UI, CLI, and TUI
// consumers: /health (process liveness), /ready (validator serving),
// /status (controller + registry snapshot), /metrics (Prometheus).
type Server struct {
	controller *controller.Controller
	registry   *registry.Registry
	rpcClient  *rpc.Client
	probes     []health.Checker
	mux        *http.ServeMux
}

// NewServer creates the status server. rpcClient may be nil; /ready then
// skips the RPC corroboration check.
func NewServer(ctrl *controller.Controller, reg *registry.Registry, rpcClient *rpc.Client) *Server {
	mux := http.NewServeMux()
	s := &Server{
		controller: ctrl,
		registry:   reg,
		rpcClient:  rpcClient,
		mux:        mux,
	}

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/ready", s.readyHandler)
	mux.HandleFunc("/status", s.statusHandler)
	mux.Handle("/metrics", metrics.Handler())

	return s
}

// AddProbe registers an extra readiness probe, run by /ready after the
// controller and process checks pass
func (s *Server) AddProbe(c health.Checker) {
	s.probes = append(s.probes, c)
}

// Start starts the HTTP server, blocking until it exits
func (s *Server) Start(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// GetHandler returns the HTTP handler for embedding in other servers
func (s *Server) GetHandler() http.Handler {
	return s.mux
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Message   string            `json:"message,omitempty"`
}

// StatusResponse is the full supervisor snapshot
type StatusResponse struct {
	Status       types.ControllerStatus  `json:"status"`
	Healthy      bool                    `json:"healthy"`
	Environment  string                  `json:"environment,omitempty"`
	Environments []string                `json:"environments"`
	Metrics      *types.ValidatorMetrics `json:"metrics,omitempty"`
}

// healthHandler implements /health: a plain supervisor liveness check
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// readyHandler implements /ready: ready means the supervised validator
// is running, its process is alive, and (when an RPC client is wired)
// the RPC port answers a blockhash query
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]string)
	ready := true
	var message string

	status := s.controller.Status()
	checks["controller"] = string(status.State)
	if status.State != types.StateRunning {
		ready = false
		message = "validator not running"
	}

	if status.State == types.StateRunning {
		if s.controller.HealthCheck() {
			checks["process"] = "alive"
		} else {
			checks["process"] = "exited"
			ready = false
			message = "validator process exited"
		}
	}

	if s.rpcClient != nil && ready {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if s.rpcClient.Healthy(ctx) {
			checks["rpc"] = "ok"
		} else {
			checks["rpc"] = "not responding"
			ready = false
			message = "validator RPC not responding"
		}
	}

	if ready {
		for _, probe := range s.probes {
			result := probe.Check(r.Context())
			if result.Healthy {
				checks[string(probe.Type())] = "ok"
				continue
			}
			checks[string(probe.Type())] = result.Message
			ready = false
			message = result.Message
		}
	}

	respStatus := "ready"
	code := http.StatusOK
	if !ready {
		respStatus = "not ready"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, ReadyResponse{
		Status:    respStatus,
		Timestamp: time.Now(),
		Checks:    checks,
		Message:   message,
	})
}

// statusHandler implements /status: the snapshot UI front-ends render
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := StatusResponse{
		Status:  s.controller.Status(),
		Healthy: s.controller.HealthCheck(),
	}

	if s.registry != nil {
		if name, _, ok := s.registry.Active(); ok {
			resp.Environment = name
		}
		for name := range s.registry.GetAll() {
			resp.Environments = append(resp.Environments, name)
		}
	}

	if m, err := s.controller.Metrics(); err == nil {
		resp.Metrics = &m
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

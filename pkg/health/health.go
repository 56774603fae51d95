package health

import (
	"context"
	"time"
)

// CheckType identifies what a checker probes
type CheckType string

const (
	CheckTypeTCP CheckType = "tcp"
	CheckTypeRPC CheckType = "rpc"
)

// Result is the outcome of a single probe
type Result struct {
	Healthy   bool
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// Checker probes one aspect of a running validator
type Checker interface {
	// Check performs the probe and returns the result
	Check(ctx context.Context) Result

	// Type returns the kind of probe
	Type() CheckType
}

// Config tunes repeated probing of a validator
type Config struct {
	// Interval is the time between probes
	Interval time.Duration

	// Timeout is the maximum time to wait for one probe
	Timeout time.Duration

	// Retries is the number of consecutive failures before the
	// validator is considered unhealthy
	Retries int

	// StartPeriod is the grace period after launch during which
	// failures are not counted. Validators replaying a large ledger
	// take a while before the RPC port answers.
	StartPeriod time.Duration
}

// DefaultConfig returns probing defaults suited to a local validator
func DefaultConfig() Config {
	return Config{
		Interval:    15 * time.Second,
		Timeout:     5 * time.Second,
		Retries:     3,
		StartPeriod: 10 * time.Second,
	}
}

// Status accumulates probe results for one validator run
type Status struct {
	ConsecutiveFailures  int
	ConsecutiveSuccesses int
	LastCheck            time.Time
	LastResult           Result

	// Healthy is the smoothed verdict: a single flaky probe does not
	// flip it, Retries consecutive failures do
	Healthy bool

	// StartedAt is when probing began for this run
	StartedAt time.Time
}

// NewStatus creates a Status that assumes health until proven otherwise
func NewStatus() *Status {
	return &Status{
		Healthy:   true,
		StartedAt: time.Now(),
	}
}

// Update folds one probe result into the status
func (s *Status) Update(result Result, config Config) {
	s.LastCheck = result.CheckedAt
	s.LastResult = result

	if result.Healthy {
		s.ConsecutiveSuccesses++
		s.ConsecutiveFailures = 0
		s.Healthy = true
		return
	}

	s.ConsecutiveFailures++
	s.ConsecutiveSuccesses = 0
	if s.ConsecutiveFailures >= config.Retries {
		s.Healthy = false
	}
}

// InStartPeriod reports whether the run is still inside the grace period
func (s *Status) InStartPeriod(config Config) bool {
	if config.StartPeriod == 0 {
		return false
	}
	return time.Since(s.StartedAt) < config.StartPeriod
}

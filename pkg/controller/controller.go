package controller

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/solforge/solforge/pkg/backend"
	"github.com/solforge/solforge/pkg/events"
	"github.com/solforge/solforge/pkg/launch"
	"github.com/solforge/solforge/pkg/log"
	"github.com/solforge/solforge/pkg/types"
)

const (
	// DefaultSettleDelay is how long Start waits after spawning before
	// declaring the validator running
	DefaultSettleDelay = 2 * time.Second

	// slotsPerSecond approximates slot production at the 400ms slot
	// target; derived metrics scale from it
	slotsPerSecond = 2.5
)

// Config holds configuration for creating a Controller
type Config struct {
	// Backend runs the validator process; required
	Backend backend.Backend

	// Environment is the initial validator configuration
	Environment types.EnvironmentConfig

	// Broker, if set, receives lifecycle events
	Broker *events.Broker

	// SettleDelay overrides DefaultSettleDelay (tests shrink it)
	SettleDelay time.Duration
}

// Controller owns one supervised validator process: its status, its
// active environment config, and (while running) its process handle.
// All state lives behind one mutex so concurrent Start/Stop calls
// observe a consistent status and a controller never holds two live
// handles.
type Controller struct {
	mu        sync.Mutex
	status    types.ControllerStatus
	cfg       types.EnvironmentConfig
	handle    *backend.Handle
	startedAt time.Time

	backend backend.Backend
	broker  *events.Broker
	settle  time.Duration
	logger  zerolog.Logger
}

// New creates a Controller in the stopped state
func New(cfg Config) *Controller {
	settle := cfg.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}

	return &Controller{
		status:  types.ControllerStatus{State: types.StateStopped},
		cfg:     cfg.Environment.Clone(),
		backend: cfg.Backend,
		broker:  cfg.Broker,
		settle:  settle,
		logger:  log.WithComponent("controller"),
	}
}

// Start launches the validator. Precondition: the controller is stopped
// (or in the error state, which Start resets so a failed run may be
// retried). Any other state fails fast with ErrAlreadyRunning.
//
// On the success path Start ensures the ledger and accounts directories
// exist, builds the invocation arguments, spawns through the backend,
// waits a fixed settling interval, and transitions to running. Backend
// failures drive the controller into the error state and are returned.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.status.State {
	case types.StateStopped, types.StateError:
	default:
		state := c.status.State
		c.mu.Unlock()
		return fmt.Errorf("%w (status: %s)", ErrAlreadyRunning, state)
	}
	c.status = types.ControllerStatus{State: types.StateStarting}
	cfg := c.cfg.Clone()
	stale := c.handle
	c.handle = nil
	c.mu.Unlock()

	// A retry after a failed Stop may still hold the previous run's
	// handle. Make sure that process is gone before spawning another.
	if stale != nil {
		_ = c.backend.Terminate(ctx, stale)
	}

	c.emit(events.EventValidatorStarting, "starting validator", nil)
	c.logger.Info().Str("kind", string(cfg.Kind)).Int("rpc_port", cfg.RPCPort).Msg("starting validator")

	for _, dir := range []string{cfg.LedgerPath, cfg.AccountsPath} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return c.fail(fmt.Errorf("%w: %s", ErrDirectoryCreation, err))
		}
	}

	args := launch.BuildArgs(cfg)
	h, err := c.backend.Spawn(ctx, args)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %s", ErrProcessSpawn, err))
	}

	// Let the validator bind its ports and settle before callers are
	// told it is running.
	if err := sleepCtx(ctx, c.settle); err != nil {
		_ = c.backend.Terminate(context.Background(), h)
		return c.fail(fmt.Errorf("%w: %s", ErrProcessSpawn, err))
	}

	c.mu.Lock()
	c.handle = h
	c.startedAt = time.Now()
	c.status = types.ControllerStatus{State: types.StateRunning}
	c.mu.Unlock()

	c.emit(events.EventValidatorStarted, "validator running", map[string]string{"handle": h.ID})
	c.logger.Info().Int("pid", h.PID).Msg("validator running")
	return nil
}

// Stop terminates the validator. Precondition: the controller reports
// running; otherwise ErrNotRunning. The backend owns the termination
// escalation (graceful signal first).
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.status.State != types.StateRunning {
		state := c.status.State
		c.mu.Unlock()
		return fmt.Errorf("%w (status: %s)", ErrNotRunning, state)
	}
	c.status = types.ControllerStatus{State: types.StateStopping}
	h := c.handle
	c.mu.Unlock()

	c.emit(events.EventValidatorStopping, "stopping validator", nil)

	// The handle is released only once termination succeeds. A failed
	// Terminate leaves it in place, so a retried Start can reach the
	// possibly-live process instead of spawning a second one.
	if err := c.backend.Terminate(ctx, h); err != nil {
		return c.fail(fmt.Errorf("%w: %s", ErrProcessTermination, err))
	}

	c.mu.Lock()
	c.handle = nil
	c.status = types.ControllerStatus{State: types.StateStopped}
	c.mu.Unlock()

	c.emit(events.EventValidatorStopped, "validator stopped", nil)
	c.logger.Info().Msg("validator stopped")
	return nil
}

// HealthCheck reports whether the supervised process is alive. Returns
// false immediately unless the controller reports running. A process
// that exited on its own makes HealthCheck return false but does NOT
// move the status off running; re-invoking Stop/Start is the caller's
// responsibility. (Deliberate: the supervisor never self-heals status
// between explicit calls.)
func (c *Controller) HealthCheck() bool {
	c.mu.Lock()
	if c.status.State != types.StateRunning {
		c.mu.Unlock()
		return false
	}
	h := c.handle
	c.mu.Unlock()

	return c.backend.Alive(h)
}

// Metrics returns a snapshot of the running validator. ErrNotRunning
// unless the controller reports running.
//
// Uptime and the process's memory/CPU come from the backend; chain
// counters (slots, transactions, ledger growth) are estimates derived
// from uptime at the 400ms slot target, since the supervisor reads no
// chain state itself.
func (c *Controller) Metrics() (types.ValidatorMetrics, error) {
	c.mu.Lock()
	if c.status.State != types.StateRunning {
		state := c.status.State
		c.mu.Unlock()
		return types.ValidatorMetrics{}, fmt.Errorf("%w (status: %s)", ErrNotRunning, state)
	}
	h := c.handle
	cfg := c.cfg
	startedAt := c.startedAt
	c.mu.Unlock()

	uptime := time.Since(startedAt)
	slots := uint64(uptime.Seconds() * slotsPerSecond)

	m := types.ValidatorMetrics{
		UptimeSeconds:    uint64(uptime.Seconds()),
		SlotsProcessed:   slots,
		TransactionCount: slots * 2, // votes and ticks dominate an idle local chain
		DiskUsageGB:      float64(slots) * 1e-6,
		AccountsLoaded:   len(cfg.PresetAccounts),
		CollectedAt:      time.Now(),
	}

	if usage, err := c.backend.Usage(h); err == nil {
		m.MemoryUsageMB = float64(usage.MemoryBytes) / (1 << 20)
		if secs := uptime.Seconds(); secs > 0 {
			m.CPUPercent = usage.CPUSeconds / secs * 100
		}
	}

	if fs := cfg.ForkSettings; fs != nil {
		var base uint64
		if fs.ForkSlot != nil {
			base = *fs.ForkSlot
		}
		height := base + slots
		m.ForkHeight = &height
	}

	return m, nil
}

// UpdateConfig replaces the stored environment config. Fails with
// ErrCannotReconfigureWhileRunning while the validator runs; otherwise
// the replacement is unconditional; validation is the caller's
// responsibility, same as everywhere else.
func (c *Controller) UpdateConfig(cfg types.EnvironmentConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status.State == types.StateRunning {
		return ErrCannotReconfigureWhileRunning
	}

	c.cfg = cfg.Clone()
	return nil
}

// Status returns the controller's current status
func (c *Controller) Status() types.ControllerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Config returns a copy of the active environment config
func (c *Controller) Config() types.EnvironmentConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

// fail records a backend-level failure so subsequent Status calls
// surface it, then returns it. The handle is left alone: a failed Stop
// keeps its handle so the next Start can terminate the old process.
func (c *Controller) fail(err error) error {
	c.mu.Lock()
	c.status = types.ControllerStatus{State: types.StateError, Message: err.Error()}
	c.mu.Unlock()

	c.emit(events.EventValidatorFailed, err.Error(), nil)
	c.logger.Error().Err(err).Msg("validator operation failed")
	return err
}

func (c *Controller) emit(t events.EventType, msg string, meta map[string]string) {
	if c.broker != nil {
		c.broker.Emit(t, msg, meta)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

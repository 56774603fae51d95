package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultSimSpawnDelay approximates validator startup time
	DefaultSimSpawnDelay = 500 * time.Millisecond

	// DefaultSimStopDelay approximates validator shutdown time
	DefaultSimStopDelay = 200 * time.Millisecond
)

// SimConfig holds configuration for the simulated backend. Zero values
// take the package defaults; tests shrink the delays.
type SimConfig struct {
	SpawnDelay time.Duration
	StopDelay  time.Duration
}

// SimBackend fakes the process backend on platforms where spawning an
// OS child process is unavailable (an in-browser execution target, for
// one). Spawn and Terminate sleep fixed short intervals so callers see
// realistic status transitions; a handle stays alive until Terminate.
// The controller's contract is identical over SimBackend and
// ExecBackend; the only difference is the absence of real process
// semantics.
type SimBackend struct {
	spawnDelay time.Duration
	stopDelay  time.Duration

	mu     sync.Mutex
	nextID int
}

// NewSimBackend creates a simulated backend with default delays
func NewSimBackend() *SimBackend {
	return NewSimBackendWithConfig(SimConfig{})
}

// NewSimBackendWithConfig creates a simulated backend with explicit delays
func NewSimBackendWithConfig(cfg SimConfig) *SimBackend {
	if cfg.SpawnDelay <= 0 {
		cfg.SpawnDelay = DefaultSimSpawnDelay
	}
	if cfg.StopDelay <= 0 {
		cfg.StopDelay = DefaultSimStopDelay
	}
	return &SimBackend{
		spawnDelay: cfg.SpawnDelay,
		stopDelay:  cfg.StopDelay,
	}
}

// Name identifies the backend
func (b *SimBackend) Name() string {
	return "sim"
}

// Spawn waits the spawn delay and returns a synthetic handle
func (b *SimBackend) Spawn(ctx context.Context, args []string) (*Handle, error) {
	if err := sleepCtx(ctx, b.spawnDelay); err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.nextID++
	pid := 10_000 + b.nextID // synthetic, never a real PID
	b.mu.Unlock()

	return &Handle{
		ID:        uuid.New().String(),
		PID:       pid,
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}, nil
}

// Terminate waits the stop delay and marks the handle dead
func (b *SimBackend) Terminate(ctx context.Context, h *Handle) error {
	if h == nil || h.done == nil {
		return fmt.Errorf("no process handle")
	}

	select {
	case <-h.done:
		return nil
	default:
	}

	if err := sleepCtx(ctx, b.stopDelay); err != nil {
		return err
	}

	close(h.done)
	return nil
}

// Alive reports true until Terminate has completed
func (b *SimBackend) Alive(h *Handle) bool {
	return h.Alive()
}

// Usage synthesizes a plausible resource snapshot
func (b *SimBackend) Usage(h *Handle) (Usage, error) {
	if !h.Alive() {
		return Usage{}, fmt.Errorf("process not running")
	}

	uptime := time.Since(h.StartedAt).Seconds()
	return Usage{
		MemoryBytes: 512 << 20,
		CPUSeconds:  uptime * 0.15,
	}, nil
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

package backend

import (
	"context"
	"time"
)

// Handle identifies one spawned validator process. A handle is created
// by Spawn, exclusively owned by its controller, and released on
// Terminate or when the process is observed dead.
type Handle struct {
	ID        string
	PID       int
	LogPath   string
	StartedAt time.Time

	// done is closed exactly once, when the process has exited
	// (or, on the simulated backend, when Terminate completes)
	done    chan struct{}
	exitErr error
}

// Alive reports whether the process behind the handle is still running.
// Non-blocking.
func (h *Handle) Alive() bool {
	if h == nil || h.done == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed when the process exits
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Usage is a coarse resource snapshot for a spawned process
type Usage struct {
	MemoryBytes uint64
	CPUSeconds  float64
}

// Backend is the platform strategy for running the validator process.
// Two implementations exist: ExecBackend spawns a real OS child process,
// SimBackend fakes the same contract with fixed delays for platforms
// where process spawning is unavailable. The controller's state machine
// is identical over both; selection happens at construction time.
type Backend interface {
	// Spawn launches the validator with the given arguments and
	// returns a handle to it
	Spawn(ctx context.Context, args []string) (*Handle, error)

	// Terminate stops the process behind the handle. Graceful first;
	// escalation policy is the backend's own.
	Terminate(ctx context.Context, h *Handle) error

	// Alive reports process liveness without blocking
	Alive(h *Handle) bool

	// Usage returns a resource snapshot for the process
	Usage(h *Handle) (Usage, error)

	// Name identifies the backend in logs and status output
	Name() string
}

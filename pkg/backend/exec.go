package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/procfs"
	"github.com/rs/zerolog"

	"github.com/solforge/solforge/pkg/log"
)

const (
	// DefaultBinary is the validator executable searched on PATH when
	// no explicit path is configured
	DefaultBinary = "solforge-validator"

	// DefaultStopTimeout bounds the graceful-shutdown window before
	// escalating to SIGKILL
	DefaultStopTimeout = 10 * time.Second
)

// ExecConfig holds configuration for the OS-process backend
type ExecConfig struct {
	// BinaryPath is the validator executable (default: DefaultBinary
	// resolved from PATH)
	BinaryPath string

	// LogDir receives the process's combined stdout/stderr, one file
	// per spawn (default: os.TempDir())
	LogDir string

	// StopTimeout is the graceful-shutdown window before SIGKILL
	StopTimeout time.Duration
}

// ExecBackend runs the validator as a real OS child process. It captures
// the process's standard streams into a per-run log file, terminates via
// SIGTERM with a bounded wait before SIGKILL, and reports liveness from
// a non-blocking exit check.
type ExecBackend struct {
	binaryPath  string
	logDir      string
	stopTimeout time.Duration
	logger      zerolog.Logger
}

// NewExecBackend creates the OS-process backend
func NewExecBackend(cfg ExecConfig) *ExecBackend {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = DefaultBinary
	}
	if cfg.LogDir == "" {
		cfg.LogDir = os.TempDir()
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}

	return &ExecBackend{
		binaryPath:  cfg.BinaryPath,
		logDir:      cfg.LogDir,
		stopTimeout: cfg.StopTimeout,
		logger:      log.WithComponent("backend.exec"),
	}
}

// Name identifies the backend
func (b *ExecBackend) Name() string {
	return "exec"
}

// Spawn launches the validator binary with the given arguments
func (b *ExecBackend) Spawn(ctx context.Context, args []string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New().String()

	if err := os.MkdirAll(b.logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(b.logDir, fmt.Sprintf("validator-%s.log", id))
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	cmd := exec.Command(b.binaryPath, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("failed to start %s: %w", b.binaryPath, err)
	}

	h := &Handle{
		ID:        id,
		PID:       cmd.Process.Pid,
		LogPath:   logPath,
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}

	// Reap the child as soon as it exits so liveness checks stay
	// non-blocking and no zombie is left behind.
	go func() {
		h.exitErr = cmd.Wait()
		logFile.Close()
		close(h.done)
	}()

	b.logger.Info().
		Int("pid", h.PID).
		Str("log", logPath).
		Strs("args", args).
		Msg("validator process started")

	return h, nil
}

// Terminate stops the process: SIGTERM, bounded wait, then SIGKILL
func (b *ExecBackend) Terminate(ctx context.Context, h *Handle) error {
	if h == nil || h.done == nil {
		return fmt.Errorf("no process handle")
	}

	proc, err := os.FindProcess(h.PID)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", h.PID, err)
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		// Already gone is not a failure
		select {
		case <-h.done:
			return nil
		default:
		}
		return fmt.Errorf("failed to signal process %d: %w", h.PID, err)
	}

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(b.stopTimeout):
	}

	b.logger.Warn().Int("pid", h.PID).Msg("graceful shutdown timed out, killing")

	if err := proc.Kill(); err != nil {
		return fmt.Errorf("failed to kill process %d: %w", h.PID, err)
	}

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Alive reports process liveness from the exit channel, non-blocking
func (b *ExecBackend) Alive(h *Handle) bool {
	return h.Alive()
}

// Usage reads resident memory and accumulated CPU time from procfs
func (b *ExecBackend) Usage(h *Handle) (Usage, error) {
	if !h.Alive() {
		return Usage{}, fmt.Errorf("process not running")
	}

	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return Usage{}, fmt.Errorf("failed to open procfs: %w", err)
	}

	proc, err := fs.Proc(h.PID)
	if err != nil {
		return Usage{}, fmt.Errorf("failed to read proc %d: %w", h.PID, err)
	}

	stat, err := proc.Stat()
	if err != nil {
		return Usage{}, fmt.Errorf("failed to read proc %d stat: %w", h.PID, err)
	}

	return Usage{
		MemoryBytes: uint64(stat.ResidentMemory()),
		CPUSeconds:  stat.CPUTime(),
	}, nil
}

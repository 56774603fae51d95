package controller

import "errors"

// Lifecycle and backend errors. Callers match with errors.Is.
var (
	// ErrAlreadyRunning is returned by Start when the validator is not
	// in a startable state
	ErrAlreadyRunning = errors.New("validator already running")

	// ErrNotRunning is returned by Stop and Metrics when the validator
	// is not running
	ErrNotRunning = errors.New("validator not running")

	// ErrCannotReconfigureWhileRunning is returned by UpdateConfig
	// while the validator runs
	ErrCannotReconfigureWhileRunning = errors.New("cannot reconfigure while validator is running")

	// ErrDirectoryCreation wraps failures preparing the ledger and
	// accounts directories
	ErrDirectoryCreation = errors.New("failed to create validator directories")

	// ErrProcessSpawn wraps backend spawn failures
	ErrProcessSpawn = errors.New("failed to spawn validator process")

	// ErrProcessTermination wraps backend termination failures
	ErrProcessTermination = errors.New("failed to terminate validator process")
)

/*
Package controller supervises one local validator process.

The controller is a small state machine over a process backend:

	stopped ──► starting ──► running ──► stopping ──► stopped
	                │            │            │
	                └────────────┴────────────┴──► error (Start may retry)

State, active config, and the process handle live behind one mutex;
a Start call that observes any state other than stopped/error fails
fast with ErrAlreadyRunning instead of queuing. Lifecycle precondition
failures (ErrAlreadyRunning, ErrNotRunning,
ErrCannotReconfigureWhileRunning) are returned without side effects.
Backend failures (spawn, terminate, directory creation) drive the
controller into the error state so that later Status calls surface the
failure even to callers who did not initiate the failing operation.
Nothing is retried automatically; retry policy belongs to the caller.

HealthCheck and Metrics are cheap, non-suspending polls. Continuous
monitoring loops belong to consumers (see pkg/monitor), not here.

One documented gap, preserved on purpose: when the underlying process
exits between explicit calls, HealthCheck reports false but the status
stays running until the caller invokes Stop or Start again.
*/
package controller

/*
Package backend abstracts how the supervised validator process is
spawned, terminated, and polled.

The controller never touches os/exec directly; it speaks the Backend
interface, and the composition root picks the implementation:

	┌───────────────── PROCESS BACKEND ─────────────────┐
	│                                                     │
	│   Controller ──► Backend interface                  │
	│                   │                                 │
	│        ┌──────────┴──────────┐                      │
	│        ▼                     ▼                      │
	│   ExecBackend           SimBackend                  │
	│   - os/exec spawn       - fixed-delay transitions   │
	│   - log file capture    - synthetic handles         │
	│   - SIGTERM→SIGKILL     - alive until Terminate     │
	│   - procfs usage        - synthesized usage         │
	└─────────────────────────────────────────────────────┘

Selection happens at construction time, not at compile time, so the
controller's logic stays single-sourced and the whole state machine is
testable with SimBackend on every target.

Handles are owned by exactly one controller. Liveness checks are
non-blocking: each spawned process is reaped by a goroutine that closes
the handle's done channel on exit.
*/
package backend

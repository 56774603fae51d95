// Package log provides structured logging for SolForge using zerolog.
//
// The package wraps zerolog behind a small API: Init configures the
// global logger (level, JSON vs console output), and the With* helpers
// derive component-scoped child loggers. Long-lived components take a
// child logger at construction time rather than logging through the
// global directly.
package log

// Package api serves the supervisor's HTTP status surface: liveness,
// readiness (validator running + process alive + RPC answering),
// a JSON status snapshot, and Prometheus metrics.
package api

// Package monitor polls the controller on a ticker and publishes the
// results as Prometheus metrics. Kept outside the controller on purpose:
// HealthCheck and Metrics are cheap polls, and continuous monitoring is
// a consumer concern.
package monitor

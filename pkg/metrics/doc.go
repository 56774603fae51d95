// Package metrics exposes the supervisor's Prometheus metrics: validator
// lifecycle counters, running-validator gauges, and registry size. The
// monitor package feeds the gauges; Handler serves /metrics.
package metrics

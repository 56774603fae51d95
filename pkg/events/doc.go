// Package events provides an in-memory pub/sub broker for supervisor
// lifecycle events (validator started/stopped/failed, environment
// changes). Consumers such as the serve loop subscribe for logging and
// display; delivery is asynchronous and best-effort.
package events

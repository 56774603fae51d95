/*
Package types defines the core data structures used throughout SolForge.

This package contains the fundamental types of the validator supervisor's
domain model: environment configurations, preset accounts, fork settings,
resource limits, controller status, and validator metrics. These types
are used by all other packages for lifecycle management, persistence,
and reporting.

All types are designed to be:
  - Serializable (JSON for storage, YAML for environment files)
  - Immutable where possible (Clone for snapshot copies)
  - Closed over their legal states (string-typed enums with constants)

An EnvironmentConfig is created and edited through the registry, is
immutable input to a controller for the duration of a run, and is
destroyed only by explicit deletion from the registry.
*/
package types

// Package config validates environment configurations and provides the
// stock environment definitions.
//
// Validate is pure and total: it takes an EnvironmentConfig and returns
// the first violated launch invariant, or nil. Validation is the
// caller's responsibility before activating an environment; neither the
// registry nor the controller validate on their own.
package config

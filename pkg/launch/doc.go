// Package launch builds the validator process invocation from an
// environment config. Pure functions only; the backend package owns
// actually running the result.
package launch

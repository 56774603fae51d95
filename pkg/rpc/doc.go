// Package rpc is a minimal JSON-RPC client for the local validator's
// RPC endpoint. Consumers use it to verify a running validator is
// actually serving; the supervisor core never depends on it.
package rpc

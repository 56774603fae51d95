// Package health provides probes for a running validator beyond plain
// process liveness: a TCP probe for the websocket port and a JSON-RPC
// probe for the RPC port, plus a Status accumulator that smooths flaky
// probes with a retry threshold and a start-period grace window.
package health

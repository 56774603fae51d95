package health

import (
	"context"
	"fmt"
	"time"

	"github.com/solforge/solforge/pkg/rpc"
)

// RPCChecker probes the validator's JSON-RPC port by requesting the
// latest blockhash. A validator that answers is producing blocks, not
// just holding the port open.
type RPCChecker struct {
	client *rpc.Client

	// Timeout bounds one probe (default: 5 seconds)
	Timeout time.Duration
}

// NewRPCChecker creates an RPC probe backed by the given client
func NewRPCChecker(client *rpc.Client) *RPCChecker {
	return &RPCChecker{
		client:  client,
		Timeout: 5 * time.Second,
	}
}

// Check requests the latest blockhash over JSON-RPC
func (r *RPCChecker) Check(ctx context.Context) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	hash, err := r.client.GetLatestBlockhash(ctx)
	if err != nil {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("rpc not responding: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	return Result{
		Healthy:   true,
		Message:   fmt.Sprintf("blockhash %s", hash),
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// Type returns the probe kind
func (r *RPCChecker) Type() CheckType {
	return CheckTypeRPC
}

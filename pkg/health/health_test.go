package health

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solforge/solforge/pkg/rpc"
)

func TestTCPCheckerUp(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	checker := NewTCPChecker(ln.Addr().String())
	result := checker.Check(context.Background())

	assert.True(t, result.Healthy)
	assert.Equal(t, CheckTypeTCP, checker.Type())
}

func TestTCPCheckerDown(t *testing.T) {
	// Grab a port, then close it so nothing listens there
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	checker := NewTCPChecker(addr).WithTimeout(500 * time.Millisecond)
	result := checker.Check(context.Background())

	assert.False(t, result.Healthy)
	assert.Contains(t, result.Message, "connection failed")
}

func TestRPCChecker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"value":{"blockhash":"9sHcv6xwn9YkB8nxTUGKDwPwNnmqVp5oLubtWJ7t1a7Z"}}}`))
	}))
	defer srv.Close()

	checker := NewRPCChecker(rpc.NewClient(srv.URL))
	result := checker.Check(context.Background())

	assert.True(t, result.Healthy)
	assert.Contains(t, result.Message, "9sHcv6xwn9Yk")
	assert.Equal(t, CheckTypeRPC, checker.Type())
}

func TestRPCCheckerUnreachable(t *testing.T) {
	checker := NewRPCChecker(rpc.NewClient("http://127.0.0.1:1"))
	checker.Timeout = time.Second

	result := checker.Check(context.Background())
	assert.False(t, result.Healthy)
}

func TestStatusRetryThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Retries = 3

	status := NewStatus()
	assert.True(t, status.Healthy)

	fail := Result{Healthy: false, CheckedAt: time.Now()}
	status.Update(fail, cfg)
	status.Update(fail, cfg)
	assert.True(t, status.Healthy, "below retry threshold")

	status.Update(fail, cfg)
	assert.False(t, status.Healthy, "at retry threshold")

	status.Update(Result{Healthy: true, CheckedAt: time.Now()}, cfg)
	assert.True(t, status.Healthy, "one success recovers")
	assert.Equal(t, 0, status.ConsecutiveFailures)
}

func TestStatusStartPeriod(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartPeriod = time.Hour

	status := NewStatus()
	assert.True(t, status.InStartPeriod(cfg))

	cfg.StartPeriod = 0
	assert.False(t, status.InStartPeriod(cfg))
}

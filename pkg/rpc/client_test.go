package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeValidator(t *testing.T, handler func(Request) (interface{}, *Error)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handler(req)

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetLatestBlockhash(t *testing.T) {
	srv := fakeValidator(t, func(req Request) (interface{}, *Error) {
		assert.Equal(t, "getLatestBlockhash", req.Method)
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 1234},
			"value":   map[string]interface{}{"blockhash": "GHtXQBsoZHVnNFa9YevAzFr17DJjgHXk3ycTKD5xD3Zi"},
		}, nil
	})

	c := NewClient(srv.URL)
	hash, err := c.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GHtXQBsoZHVnNFa9YevAzFr17DJjgHXk3ycTKD5xD3Zi", hash)
	assert.True(t, c.Healthy(context.Background()))
}

func TestGetSlot(t *testing.T) {
	srv := fakeValidator(t, func(req Request) (interface{}, *Error) {
		assert.Equal(t, "getSlot", req.Method)
		return uint64(250_000_123), nil
	})

	c := NewClient(srv.URL)
	slot, err := c.GetSlot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(250_000_123), slot)
}

func TestRPCError(t *testing.T) {
	srv := fakeValidator(t, func(req Request) (interface{}, *Error) {
		return nil, &Error{Code: -32601, Message: "method not found"}
	})

	c := NewClient(srv.URL)
	_, err := c.GetLatestBlockhash(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method not found")
	assert.False(t, c.Healthy(context.Background()))
}

func TestUnreachableEndpoint(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // nothing listens here
	_, err := c.GetLatestBlockhash(context.Background())
	assert.Error(t, err)
	assert.False(t, c.Healthy(context.Background()))
}

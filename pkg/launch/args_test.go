package launch

import (
	"testing"

	"github.com/solforge/solforge/pkg/types"
	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint64) *uint64 { return &v }

// TestBuildArgsDefaultDevnet pins the exact invocation for the stock
// devnet shape
func TestBuildArgsDefaultDevnet(t *testing.T) {
	cfg := types.EnvironmentConfig{
		Kind:          types.EnvironmentLocalDevnet,
		RPCPort:       8899,
		WSPort:        8900,
		LedgerPath:    "/tmp/ledger",
		EnableMCP:     true,
		AnchorProject: true,
		PresetAccounts: []types.PresetAccount{
			{Pubkey: "A", Lamports: 1_000_000_000_000},
		},
	}

	assert.Equal(t, []string{
		"start",
		"--rpc-port", "8899",
		"--ws-port", "8900",
		"--ledger", "/tmp/ledger",
		"--mcp",
		"--anchor",
		"--account", "A:1000000000000",
	}, BuildArgs(cfg))
}

// TestBuildArgs tests flag presence per config field
func TestBuildArgs(t *testing.T) {
	base := types.EnvironmentConfig{
		RPCPort:    8899,
		WSPort:     8900,
		LedgerPath: "/data/ledger",
	}

	tests := []struct {
		name   string
		mutate func(*types.EnvironmentConfig)
		want   []string
	}{
		{
			name:   "minimal config",
			mutate: func(c *types.EnvironmentConfig) {},
			want: []string{
				"start", "--rpc-port", "8899", "--ws-port", "8900", "--ledger", "/data/ledger",
			},
		},
		{
			name: "mcp only",
			mutate: func(c *types.EnvironmentConfig) {
				c.EnableMCP = true
			},
			want: []string{
				"start", "--rpc-port", "8899", "--ws-port", "8900", "--ledger", "/data/ledger", "--mcp",
			},
		},
		{
			name: "anchor only",
			mutate: func(c *types.EnvironmentConfig) {
				c.AnchorProject = true
			},
			want: []string{
				"start", "--rpc-port", "8899", "--ws-port", "8900", "--ledger", "/data/ledger", "--anchor",
			},
		},
		{
			name: "accounts keep registration order",
			mutate: func(c *types.EnvironmentConfig) {
				c.PresetAccounts = []types.PresetAccount{
					{Pubkey: "B", Lamports: 5},
					{Pubkey: "A", Lamports: 10},
				}
			},
			want: []string{
				"start", "--rpc-port", "8899", "--ws-port", "8900", "--ledger", "/data/ledger",
				"--account", "B:5", "--account", "A:10",
			},
		},
		{
			name: "fork url only",
			mutate: func(c *types.EnvironmentConfig) {
				c.ForkSettings = &types.ForkSettings{ForkURL: "https://rpc.example.com"}
			},
			want: []string{
				"start", "--rpc-port", "8899", "--ws-port", "8900", "--ledger", "/data/ledger",
				"--fork", "https://rpc.example.com",
			},
		},
		{
			name: "fork with slots",
			mutate: func(c *types.EnvironmentConfig) {
				c.ForkSettings = &types.ForkSettings{
					ForkURL:  "https://rpc.example.com",
					ForkSlot: uintPtr(250_000_000),
					WarpSlot: uintPtr(250_000_100),
				}
			},
			want: []string{
				"start", "--rpc-port", "8899", "--ws-port", "8900", "--ledger", "/data/ledger",
				"--fork", "https://rpc.example.com",
				"--fork-slot", "250000000",
				"--warp-slot", "250000100",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Equal(t, tt.want, BuildArgs(cfg))
		})
	}
}

// TestBuildArgsDeterministic verifies repeated calls yield identical output
func TestBuildArgsDeterministic(t *testing.T) {
	cfg := types.EnvironmentConfig{
		RPCPort:       8899,
		WSPort:        8900,
		LedgerPath:    "/tmp/ledger",
		EnableMCP:     true,
		AnchorProject: true,
		PresetAccounts: []types.PresetAccount{
			{Pubkey: "A", Lamports: 1},
			{Pubkey: "B", Lamports: 2},
		},
		ForkSettings: &types.ForkSettings{ForkURL: "https://rpc.example.com", ForkSlot: uintPtr(42)},
	}

	first := BuildArgs(cfg)
	second := BuildArgs(cfg)
	assert.Equal(t, first, second)
}

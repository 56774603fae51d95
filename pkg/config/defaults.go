package config

import (
	"os"
	"path/filepath"

	"github.com/solforge/solforge/pkg/types"
)

// MainnetRPCEndpoint is the public endpoint the default fork
// environment mirrors from
const MainnetRPCEndpoint = "https://api.mainnet-beta.solana.com"

// DefaultDataDir returns the base directory for validator state
// (ledger, account snapshots, logs)
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "solforge")
	}
	return filepath.Join(home, ".solforge")
}

// DefaultLocalDevnet returns the stock local development environment:
// fresh chain, two pre-funded accounts, MCP and Anchor integration on.
func DefaultLocalDevnet() types.EnvironmentConfig {
	dataDir := DefaultDataDir()
	return types.EnvironmentConfig{
		Kind:         types.EnvironmentLocalDevnet,
		RPCPort:      8899,
		WSPort:       8900,
		LedgerPath:   filepath.Join(dataDir, "local-devnet", "ledger"),
		AccountsPath: filepath.Join(dataDir, "local-devnet", "accounts"),
		PresetAccounts: []types.PresetAccount{
			{Pubkey: "11111111111111111111111111111112", Lamports: 1_000_000_000_000},
			{Pubkey: "11111111111111111111111111111113", Lamports: 1_000_000_000_000},
		},
		EnableMCP:     true,
		AnchorProject: true,
	}
}

// DefaultMainnetFork returns the stock mainnet fork environment:
// mirrors state from a public mainnet endpoint, Anchor integration off.
func DefaultMainnetFork() types.EnvironmentConfig {
	dataDir := DefaultDataDir()
	return types.EnvironmentConfig{
		Kind:         types.EnvironmentMainnetFork,
		RPCPort:      8900,
		WSPort:       8901,
		LedgerPath:   filepath.Join(dataDir, "mainnet-fork", "ledger"),
		AccountsPath: filepath.Join(dataDir, "mainnet-fork", "accounts"),
		ForkSettings: &types.ForkSettings{
			ForkURL: MainnetRPCEndpoint,
		},
		EnableMCP:     true,
		AnchorProject: false,
	}
}

package types

import (
	"encoding/json"
	"time"
)

// EnvironmentKind classifies how a validator environment is sourced
type EnvironmentKind string

const (
	// EnvironmentLocalDevnet is a fresh local chain with preset accounts
	EnvironmentLocalDevnet EnvironmentKind = "local-devnet"

	// EnvironmentMainnetFork mirrors state from a remote network
	EnvironmentMainnetFork EnvironmentKind = "mainnet-fork"

	// EnvironmentCustom is a user-defined environment (custom genesis, etc.)
	EnvironmentCustom EnvironmentKind = "custom"
)

// State represents the lifecycle state of the validator controller
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateRunning  State = "running"
	StateStopping State = "stopping"
	StateError    State = "error"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// ControllerStatus is the controller's current state plus, for the error
// state, the failure that drove it there. Exactly one state is active at
// a time; Message is empty unless State == StateError.
type ControllerStatus struct {
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
}

// EnvironmentConfig describes how to launch a local validator process.
// It is immutable input to a controller for the duration of a run; edits
// happen through the environment registry while the validator is stopped.
type EnvironmentConfig struct {
	Kind           EnvironmentKind `json:"kind" yaml:"kind"`
	RPCPort        int             `json:"rpc_port" yaml:"rpc_port"`
	WSPort         int             `json:"ws_port" yaml:"ws_port"`
	LedgerPath     string          `json:"ledger_path" yaml:"ledger_path"`
	AccountsPath   string          `json:"accounts_path" yaml:"accounts_path"`
	PresetAccounts []PresetAccount `json:"preset_accounts,omitempty" yaml:"preset_accounts,omitempty"`
	ForkSettings   *ForkSettings   `json:"fork_settings,omitempty" yaml:"fork_settings,omitempty"`
	CustomGenesis  json.RawMessage `json:"custom_genesis,omitempty" yaml:"custom_genesis,omitempty"`
	EnableMCP      bool            `json:"enable_mcp" yaml:"enable_mcp"`
	AnchorProject  bool            `json:"anchor_project" yaml:"anchor_project"`
	ResourceLimits *ResourceLimits `json:"resource_limits,omitempty" yaml:"resource_limits,omitempty"`
}

// Clone returns a deep copy of the config so callers can hand out
// snapshots without sharing slices or nested pointers.
func (c EnvironmentConfig) Clone() EnvironmentConfig {
	out := c

	if c.PresetAccounts != nil {
		out.PresetAccounts = make([]PresetAccount, len(c.PresetAccounts))
		for i, acc := range c.PresetAccounts {
			out.PresetAccounts[i] = acc.clone()
		}
	}

	if c.ForkSettings != nil {
		fs := *c.ForkSettings
		if c.ForkSettings.ForkSlot != nil {
			v := *c.ForkSettings.ForkSlot
			fs.ForkSlot = &v
		}
		if c.ForkSettings.WarpSlot != nil {
			v := *c.ForkSettings.WarpSlot
			fs.WarpSlot = &v
		}
		out.ForkSettings = &fs
	}

	if c.CustomGenesis != nil {
		out.CustomGenesis = append(json.RawMessage(nil), c.CustomGenesis...)
	}

	if c.ResourceLimits != nil {
		rl := *c.ResourceLimits
		out.ResourceLimits = &rl
	}

	return out
}

// PresetAccount is an account pre-funded with a given balance at
// validator startup
type PresetAccount struct {
	Pubkey   string         `json:"pubkey" yaml:"pubkey"`
	Lamports uint64         `json:"lamports" yaml:"lamports"`
	Tokens   []TokenAccount `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

func (a PresetAccount) clone() PresetAccount {
	out := a
	if a.Tokens != nil {
		out.Tokens = append([]TokenAccount(nil), a.Tokens...)
	}
	return out
}

// TokenAccount is a token balance attached to a preset account
type TokenAccount struct {
	Mint   string `json:"mint" yaml:"mint"`
	Amount uint64 `json:"amount" yaml:"amount"`
}

// ForkSettings causes the validator to mirror state from a remote
// network at a given point
type ForkSettings struct {
	ForkURL  string  `json:"fork_url" yaml:"fork_url"`
	ForkSlot *uint64 `json:"fork_slot,omitempty" yaml:"fork_slot,omitempty"`
	WarpSlot *uint64 `json:"warp_slot,omitempty" yaml:"warp_slot,omitempty"`
}

// ResourceLimits are advisory resource bounds attached to an environment.
// Enforcement is delegated to the OS or the validator process itself.
type ResourceLimits struct {
	MaxMemoryMB   int `json:"max_memory_mb" yaml:"max_memory_mb"`
	MaxCPUPercent int `json:"max_cpu_percent" yaml:"max_cpu_percent"`
	MaxDiskGB     int `json:"max_disk_gb" yaml:"max_disk_gb"`
}

// ValidatorMetrics is a point-in-time snapshot of a running validator.
// Only meaningful while the controller reports StateRunning.
type ValidatorMetrics struct {
	UptimeSeconds    uint64  `json:"uptime_seconds"`
	MemoryUsageMB    float64 `json:"memory_usage_mb"`
	CPUPercent       float64 `json:"cpu_percent"`
	DiskUsageGB      float64 `json:"disk_usage_gb"`
	ConnectedPeers   int     `json:"connected_peers"`
	SlotsProcessed   uint64  `json:"slots_processed"`
	TransactionCount uint64  `json:"transaction_count"`
	ForkHeight       *uint64 `json:"fork_height,omitempty"`
	AccountsLoaded   int     `json:"accounts_loaded"`

	CollectedAt time.Time `json:"collected_at"`
}

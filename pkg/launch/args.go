package launch

import (
	"fmt"
	"strconv"

	"github.com/solforge/solforge/pkg/types"
)

// BuildArgs renders an environment config into the validator binary's
// command-line arguments. The order is fixed and load-bearing: the
// invocation must be reproducible for a given config, and tests assert
// on exact argument sequences.
//
//	start --rpc-port N --ws-port N --ledger PATH
//	[--mcp] [--anchor]
//	[--account PUBKEY:LAMPORTS ...]
//	[--fork URL [--fork-slot N] [--warp-slot N]]
//
// BuildArgs has no side effects and requires no running process.
func BuildArgs(cfg types.EnvironmentConfig) []string {
	args := []string{
		"start",
		"--rpc-port", strconv.Itoa(cfg.RPCPort),
		"--ws-port", strconv.Itoa(cfg.WSPort),
		"--ledger", cfg.LedgerPath,
	}

	if cfg.EnableMCP {
		args = append(args, "--mcp")
	}

	if cfg.AnchorProject {
		args = append(args, "--anchor")
	}

	for _, acc := range cfg.PresetAccounts {
		args = append(args, "--account", fmt.Sprintf("%s:%d", acc.Pubkey, acc.Lamports))
	}

	if fs := cfg.ForkSettings; fs != nil {
		args = append(args, "--fork", fs.ForkURL)
		if fs.ForkSlot != nil {
			args = append(args, "--fork-slot", strconv.FormatUint(*fs.ForkSlot, 10))
		}
		if fs.WarpSlot != nil {
			args = append(args, "--warp-slot", strconv.FormatUint(*fs.WarpSlot, 10))
		}
	}

	return args
}

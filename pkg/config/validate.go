package config

import (
	"errors"
	"fmt"

	"github.com/solforge/solforge/pkg/types"
)

// Validation errors. Callers match with errors.Is.
var (
	ErrPortConflict      = errors.New("rpc and websocket ports conflict")
	ErrPortOutOfRange    = errors.New("port out of range")
	ErrEmptyForkURL      = errors.New("fork url is empty")
	ErrEmptyPresetPubkey = errors.New("preset account pubkey is empty")
)

const (
	// MinPort is the lowest port a validator environment may bind.
	// Ports below 1024 require elevated privileges.
	MinPort = 1024

	// MaxPort is the highest valid TCP port
	MaxPort = 65535
)

// Validate checks an environment config for launchability. Checks run
// in a fixed order and short-circuit on the first failure, so a config
// with multiple problems reports the same error on every call:
//
//  1. RPC and WS ports must differ
//  2. RPC port must be >= 1024
//  3. WS port must be within [1024, 65535]
//  4. Fork settings, if present, must carry a fork URL
//  5. Every preset account must carry a pubkey
//
// Validate performs no I/O and never mutates the config.
func Validate(cfg types.EnvironmentConfig) error {
	if cfg.RPCPort == cfg.WSPort {
		return fmt.Errorf("%w: rpc and ws both bind %d", ErrPortConflict, cfg.RPCPort)
	}

	if cfg.RPCPort < MinPort || cfg.RPCPort > MaxPort {
		return fmt.Errorf("%w: rpc port %d not in [%d, %d]", ErrPortOutOfRange, cfg.RPCPort, MinPort, MaxPort)
	}

	if cfg.WSPort < MinPort || cfg.WSPort > MaxPort {
		return fmt.Errorf("%w: ws port %d not in [%d, %d]", ErrPortOutOfRange, cfg.WSPort, MinPort, MaxPort)
	}

	if cfg.ForkSettings != nil && cfg.ForkSettings.ForkURL == "" {
		return ErrEmptyForkURL
	}

	for i, acc := range cfg.PresetAccounts {
		if acc.Pubkey == "" {
			return fmt.Errorf("%w: preset account %d", ErrEmptyPresetPubkey, i)
		}
	}

	return nil
}

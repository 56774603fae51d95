package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solforge/solforge/pkg/registry"
	"github.com/solforge/solforge/pkg/types"
)

func testStore(t *testing.T) *EnvironmentStore {
	t.Helper()
	s, err := NewEnvironmentStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestEnvironmentRoundTrip verifies save/list/delete round-trips configs
func TestEnvironmentRoundTrip(t *testing.T) {
	s := testStore(t)

	slot := uint64(42)
	cfg := types.EnvironmentConfig{
		Kind:       types.EnvironmentMainnetFork,
		RPCPort:    8900,
		WSPort:     8901,
		LedgerPath: "/data/ledger",
		ForkSettings: &types.ForkSettings{
			ForkURL:  "https://api.mainnet-beta.solana.com",
			ForkSlot: &slot,
		},
		PresetAccounts: []types.PresetAccount{{Pubkey: "A", Lamports: 100}},
	}

	require.NoError(t, s.SaveEnvironment("fork", cfg))

	envs, err := s.ListEnvironments()
	require.NoError(t, err)
	require.Len(t, envs, 1)

	got := envs["fork"]
	assert.Equal(t, types.EnvironmentMainnetFork, got.Kind)
	require.NotNil(t, got.ForkSettings)
	require.NotNil(t, got.ForkSettings.ForkSlot)
	assert.Equal(t, uint64(42), *got.ForkSettings.ForkSlot)
	assert.Equal(t, uint64(100), got.PresetAccounts[0].Lamports)

	require.NoError(t, s.DeleteEnvironment("fork"))
	envs, err = s.ListEnvironments()
	require.NoError(t, err)
	assert.Empty(t, envs)
}

// TestActiveSelection verifies the active name persists and clears
func TestActiveSelection(t *testing.T) {
	s := testStore(t)

	name, err := s.Active()
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, s.SetActive("local-devnet"))
	name, err = s.Active()
	require.NoError(t, err)
	assert.Equal(t, "local-devnet", name)

	require.NoError(t, s.SetActive(""))
	name, err = s.Active()
	require.NoError(t, err)
	assert.Empty(t, name)
}

// TestLoadRegistrySeedsDefaults verifies a fresh store yields the stock
// registry and persists it
func TestLoadRegistrySeedsDefaults(t *testing.T) {
	s := testStore(t)

	reg, err := s.LoadRegistry()
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	envs, err := s.ListEnvironments()
	require.NoError(t, err)
	assert.Len(t, envs, 2)
	assert.Contains(t, envs, registry.DefaultLocalDevnetName)
	assert.Contains(t, envs, registry.DefaultMainnetForkName)
}

// TestFlushAndReload verifies a mutated registry survives a reload,
// including the active selection
func TestFlushAndReload(t *testing.T) {
	s := testStore(t)

	reg, err := s.LoadRegistry()
	require.NoError(t, err)

	reg.Save("custom", types.EnvironmentConfig{Kind: types.EnvironmentCustom, RPCPort: 9000, WSPort: 9001})
	_, err = reg.SwitchActive("custom")
	require.NoError(t, err)
	require.NoError(t, s.FlushRegistry(reg))

	reloaded, err := s.LoadRegistry()
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Len())

	name, cfg, ok := reloaded.Active()
	require.True(t, ok)
	assert.Equal(t, "custom", name)
	assert.Equal(t, 9000, cfg.RPCPort)

	// Deleting the active entry and flushing clears the persisted
	// selection too
	reloaded.Delete("custom")
	require.NoError(t, s.FlushRegistry(reloaded))

	final, err := s.LoadRegistry()
	require.NoError(t, err)
	assert.Equal(t, 2, final.Len())
	_, _, ok = final.Active()
	assert.False(t, ok)
}

package backend

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solforge/solforge/pkg/log"
)

func init() {
	log.Init(log.Config{Level: log.ErrorLevel, JSONOutput: true})
}

// TestExecSpawnTerminate spawns a real short-lived process and tears it
// down. Uses sleep(1) as a stand-in for the validator binary.
func TestExecSpawnTerminate(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	b := NewExecBackend(ExecConfig{
		BinaryPath:  "sleep",
		LogDir:      t.TempDir(),
		StopTimeout: 2 * time.Second,
	})

	ctx := context.Background()
	h, err := b.Spawn(ctx, []string{"30"})
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotZero(t, h.PID)
	assert.True(t, b.Alive(h))

	require.NoError(t, b.Terminate(ctx, h))
	assert.False(t, b.Alive(h))
}

// TestExecDetectsExit verifies liveness flips without Terminate when the
// process exits on its own
func TestExecDetectsExit(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}

	b := NewExecBackend(ExecConfig{
		BinaryPath: "true",
		LogDir:     t.TempDir(),
	})

	h, err := b.Spawn(context.Background(), nil)
	require.NoError(t, err)

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit")
	}
	assert.False(t, b.Alive(h))
}

// TestExecSpawnMissingBinary verifies spawn failure surfaces as an error
func TestExecSpawnMissingBinary(t *testing.T) {
	b := NewExecBackend(ExecConfig{
		BinaryPath: "definitely-not-a-real-binary-xyz",
		LogDir:     t.TempDir(),
	})

	h, err := b.Spawn(context.Background(), []string{"start"})
	assert.Error(t, err)
	assert.Nil(t, h)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/solforge/solforge/pkg/api"
	"github.com/solforge/solforge/pkg/backend"
	"github.com/solforge/solforge/pkg/config"
	"github.com/solforge/solforge/pkg/controller"
	"github.com/solforge/solforge/pkg/events"
	"github.com/solforge/solforge/pkg/health"
	"github.com/solforge/solforge/pkg/launch"
	"github.com/solforge/solforge/pkg/log"
	"github.com/solforge/solforge/pkg/monitor"
	"github.com/solforge/solforge/pkg/registry"
	"github.com/solforge/solforge/pkg/rpc"
	"github.com/solforge/solforge/pkg/storage"
	"github.com/solforge/solforge/pkg/types"
)

var validatorCmd = &cobra.Command{
	Use:   "validator",
	Short: "Manage the local validator",
}

var validatorRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the local validator in the foreground",
	Long: `Run the local validator under supervision until interrupted.

The environment comes from --env, falling back to the registry's active
selection, falling back to local-devnet. Status, readiness, and metrics
are served on --api-addr while the validator runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return supervise(cmd, true)
	},
}

var validatorArgsCmd = &cobra.Command{
	Use:   "args",
	Short: "Print the validator invocation for an environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, _, store, err := resolveEnvironment(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		fmt.Println(strings.Join(launch.BuildArgs(cfg), " "))
		return nil
	},
}

var validatorStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running validator over RPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, _ := cmd.Flags().GetString("rpc")

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		client := rpc.NewClient(endpoint)
		hash, err := client.GetLatestBlockhash(ctx)
		if err != nil {
			return fmt.Errorf("validator not responding at %s: %w", endpoint, err)
		}

		slot, err := client.GetSlot(ctx)
		if err != nil {
			return fmt.Errorf("failed to query slot: %w", err)
		}

		fmt.Printf("Validator responding at %s\n", endpoint)
		fmt.Printf("  Slot:      %d\n", slot)
		fmt.Printf("  Blockhash: %s\n", hash)
		return nil
	},
}

func init() {
	addSuperviseFlags(validatorRunCmd)

	validatorArgsCmd.Flags().String("env", "", "Environment to render (default: active, then local-devnet)")

	validatorStatusCmd.Flags().String("rpc", "http://localhost:8899", "Validator RPC endpoint")

	validatorCmd.AddCommand(validatorRunCmd)
	validatorCmd.AddCommand(validatorArgsCmd)
	validatorCmd.AddCommand(validatorStatusCmd)
	validatorCmd.AddCommand(validatorLogsCmd)
}

// addSuperviseFlags registers the flags shared by `validator run` and
// `serve`
func addSuperviseFlags(cmd *cobra.Command) {
	cmd.Flags().String("env", "", "Environment to run (default: active, then local-devnet)")
	cmd.Flags().String("binary", backend.DefaultBinary, "Validator binary")
	cmd.Flags().Bool("simulate", false, "Use the simulated backend (no real process)")
	cmd.Flags().String("api-addr", "127.0.0.1:7099", "Status/metrics listen address")
}

// resolveEnvironment loads the registry and picks the environment for
// the command: --env flag, then the active selection, then local-devnet
func resolveEnvironment(cmd *cobra.Command) (string, types.EnvironmentConfig, *registry.Registry, *storage.EnvironmentStore, error) {
	reg, store, err := openRegistry(cmd)
	if err != nil {
		return "", types.EnvironmentConfig{}, nil, nil, err
	}

	name, _ := cmd.Flags().GetString("env")
	if name == "" {
		if active, _, ok := reg.Active(); ok {
			name = active
		} else {
			name = registry.DefaultLocalDevnetName
		}
	}

	cfg, ok := reg.Get(name)
	if !ok {
		store.Close()
		return "", types.EnvironmentConfig{}, nil, nil, fmt.Errorf("environment %q not found", name)
	}

	return name, cfg, reg, store, nil
}

// supervise wires up the full supervisor (backend, controller, event
// broker, metrics collector, status server) and blocks until a signal
// arrives. With autostart the validator is launched immediately; the
// `serve` command hosts the same stack with the validator left stopped.
func supervise(cmd *cobra.Command, autostart bool) error {
	name, cfg, reg, store, err := resolveEnvironment(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("environment %q is not launchable: %w", name, err)
	}

	logger := log.WithEnvironment(name)

	simulate, _ := cmd.Flags().GetBool("simulate")
	var be backend.Backend
	if simulate {
		be = backend.NewSimBackend()
		logger.Warn().Msg("using simulated backend; no real validator process will run")
	} else {
		binary, _ := cmd.Flags().GetString("binary")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		be = backend.NewExecBackend(backend.ExecConfig{
			BinaryPath: binary,
			LogDir:     filepath.Join(dataDir, "logs"),
		})
	}

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	ctrl := controller.New(controller.Config{
		Backend:     be,
		Environment: cfg,
		Broker:      broker,
	})

	collector := monitor.NewCollector(ctrl, reg)
	collector.WatchEvents(broker)
	collector.Start()
	defer collector.Stop()

	// Log lifecycle events as they happen. Unsubscribe closes the
	// channel, which ends the goroutine.
	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)
	go func() {
		for ev := range sub {
			logger.Info().Str("event", string(ev.Type)).Msg(ev.Message)
		}
	}()

	rpcClient := rpc.NewClient(fmt.Sprintf("http://localhost:%d", cfg.RPCPort))
	apiServer := api.NewServer(ctrl, reg, rpcClient)
	if !simulate {
		apiServer.AddProbe(health.NewTCPChecker(fmt.Sprintf("localhost:%d", cfg.WSPort)))
	}

	apiAddr, _ := cmd.Flags().GetString("api-addr")
	errCh := make(chan error, 1)
	go func() {
		if err := apiServer.Start(apiAddr); err != nil {
			errCh <- fmt.Errorf("status server error: %w", err)
		}
	}()

	if autostart {
		if err := ctrl.Start(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("Validator running (environment: %s, backend: %s)\n", name, be.Name())
		fmt.Printf("  RPC:    http://localhost:%d\n", cfg.RPCPort)
		fmt.Printf("  WS:     ws://localhost:%d\n", cfg.WSPort)
	} else {
		fmt.Printf("Supervisor serving (environment: %s, backend: %s, validator stopped)\n", name, be.Name())
	}
	fmt.Printf("  Status: http://%s/status\n", apiAddr)
	fmt.Println("Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("status server failed")
	}

	if ctrl.Status().State == types.StateRunning {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := ctrl.Stop(stopCtx); err != nil {
			return err
		}
		fmt.Println("Validator stopped")
	}

	return nil
}

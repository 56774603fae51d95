package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solforge/solforge/pkg/config"
	"github.com/solforge/solforge/pkg/registry"
	"github.com/solforge/solforge/pkg/storage"
	"github.com/solforge/solforge/pkg/types"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage validator environments",
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved environments",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, store, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		active, _, _ := reg.Active()

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tRPC\tWS\tACTIVE")
		for name, cfg := range reg.GetAll() {
			mark := ""
			if name == active {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", name, cfg.Kind, cfg.RPCPort, cfg.WSPort, mark)
		}
		return w.Flush()
	},
}

var envShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show an environment as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, store, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		cfg, ok := reg.Get(args[0])
		if !ok {
			return fmt.Errorf("environment %q not found", args[0])
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render environment: %w", err)
		}
		fmt.Printf("# %s\n%s", args[0], out)
		return nil
	},
}

// envFile is the on-disk shape accepted by `env apply -f`
type envFile struct {
	Name        string                  `yaml:"name"`
	Environment types.EnvironmentConfig `yaml:"environment"`
}

var envApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Save an environment from a YAML file",
	Long: `Save an environment from a YAML file, creating or replacing it.

The file carries a name and an environment block:

  name: my-devnet
  environment:
    kind: local-devnet
    rpc_port: 8899
    ws_port: 8900`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("--file is required")
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		var ef envFile
		if err := yaml.Unmarshal(data, &ef); err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
		if ef.Name == "" {
			return fmt.Errorf("%s: missing environment name", file)
		}

		if err := config.Validate(ef.Environment); err != nil {
			return fmt.Errorf("environment %q is invalid: %w", ef.Name, err)
		}

		reg, store, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		reg.Save(ef.Name, ef.Environment)
		if err := store.FlushRegistry(reg); err != nil {
			return err
		}

		fmt.Printf("Environment %q saved\n", ef.Name)
		return nil
	},
}

var envDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, store, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if _, ok := reg.Get(args[0]); !ok {
			return fmt.Errorf("environment %q not found", args[0])
		}

		reg.Delete(args[0])
		if err := store.FlushRegistry(reg); err != nil {
			return err
		}

		fmt.Printf("Environment %q deleted\n", args[0])
		return nil
	},
}

var envUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch the active environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: solforge env use <name>")
		}

		reg, store, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := reg.SwitchActive(args[0]); err != nil {
			return err
		}
		if err := store.FlushRegistry(reg); err != nil {
			return err
		}

		fmt.Printf("Active environment: %s\n", args[0])
		return nil
	},
}

func init() {
	envApplyCmd.Flags().StringP("file", "f", "", "YAML file describing the environment")

	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envShowCmd)
	envCmd.AddCommand(envApplyCmd)
	envCmd.AddCommand(envDeleteCmd)
	envCmd.AddCommand(envUseCmd)
}

func openRegistry(cmd *cobra.Command) (*registry.Registry, *storage.EnvironmentStore, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	store, err := storage.NewEnvironmentStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open environment store: %w", err)
	}
	reg, err := store.LoadRegistry()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return reg, store, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solforge/solforge/pkg/config"
	"github.com/solforge/solforge/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "solforge",
	Short: "SolForge - local validator supervisor for Solana development",
	Long: `SolForge supervises a local Solana validator for development:
named environments (fresh devnet, mainnet fork, custom genesis),
a lifecycle controller over the validator process, and status,
metrics, and health endpoints for UI and tooling front-ends.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		jsonOut, _ := cmd.Flags().GetBool("log-json")
		log.Init(log.Config{
			Level:      log.Level(level),
			JSONOutput: jsonOut,
		})
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"SolForge version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("data-dir", config.DefaultDataDir(), "Base directory for environments and validator state")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit JSON logs")

	rootCmd.AddCommand(validatorCmd)
	rootCmd.AddCommand(envCmd)
}

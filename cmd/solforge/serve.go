package main

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the supervisor without starting the validator",
	Long: `Host the supervisor stack in the foreground: the status, readiness,
and metrics endpoints come up on --api-addr, lifecycle events are
subscribed and logged, but the validator itself stays stopped until
started by another means. Pass --start to launch it immediately, which
makes serve equivalent to 'validator run'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetBool("start")
		return supervise(cmd, start)
	},
}

func init() {
	addSuperviseFlags(serveCmd)
	serveCmd.Flags().Bool("start", false, "Start the validator immediately")

	rootCmd.AddCommand(serveCmd)
}

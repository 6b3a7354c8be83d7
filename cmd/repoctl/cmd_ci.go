package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoctl/internal/session"
	"repoctl/internal/tooling"
)

var ciParallel bool

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Run the repository's test and lint sessions",
}

var ciListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sessions configured for this repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := session.Resolve(cfg)
		if err != nil {
			return err
		}
		for _, s := range resolved.Sessions {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", s.Name, s.Desc)
		}
		return nil
	},
}

var ciRunCmd = &cobra.Command{
	Use:   "run [session...]",
	Short: "Run sessions (all of them when none are named)",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := session.Resolve(cfg)
		if err != nil {
			return err
		}

		// Sessions stream their tool output so long test runs stay visible.
		streaming := tooling.NewRunner(logger,
			tooling.WithTimeout(timeout),
			tooling.WithStream(cmd.OutOrStdout()))
		sessions := session.NewRunner(streaming, logger)

		if ciParallel {
			return sessions.RunParallel(cmd.Context(), resolved, args)
		}
		return sessions.Run(cmd.Context(), resolved, args)
	},
}

func init() {
	ciRunCmd.Flags().BoolVar(&ciParallel, "parallel", false, "run sessions concurrently")
	ciCmd.AddCommand(ciListCmd)
	ciCmd.AddCommand(ciRunCmd)
}

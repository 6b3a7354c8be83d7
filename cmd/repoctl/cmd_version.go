package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repoctl/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Work with the docs version manifest",
}

var versionSortCmd = &cobra.Command{
	Use:   "sort [versions.json]",
	Short: "Sort the docs version manifest into display order",
	Long: `Sorts the version-switcher manifest (mike-style versions.json).

With no argument the manifest is read from stdin and the sorted manifest is
written to stdout. With a file argument the file is rewritten in place.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return usageError{msg: "at most one versions.json argument is accepted"}
		}
		return nil
	},
	RunE: runVersionSort,
}

func init() {
	versionCmd.AddCommand(versionSortCmd)
}

func runVersionSort(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return version.SortStream(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	path := args[0]
	logger.Debug("sorting version manifest in place", zap.String("path", path))
	return version.SortFile(path)
}

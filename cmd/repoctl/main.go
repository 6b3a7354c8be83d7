// repoctl centralizes the shared developer tooling for a family of related
// repositories: CI session wiring, documentation helpers, protobuf build
// configuration, and small utilities like sorting the docs version manifest
// and linting code examples embedded in doc comments.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repoctl/internal/config"
	"repoctl/internal/logging"
	"repoctl/internal/tooling"
)

var (
	// Global flags
	verbose    bool
	chdir      string
	configPath string
	timeout    time.Duration

	// Shared state built in PersistentPreRunE
	logger *zap.Logger
	cfg    config.Config
	runner *tooling.Runner
)

var rootCmd = &cobra.Command{
	Use:   "repoctl",
	Short: "Shared repository configuration and tooling helper",
	Long: `repoctl wires a repository into the shared tooling used across our
projects: task-runner sessions for tests and linters, documentation site
helpers, protobuf build configuration, and utilities for the docs version
manifest and for linting code examples embedded in documentation.

It configures and invokes external tools; it never reimplements them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if chdir != "" {
			if err := os.Chdir(chdir); err != nil {
				return fmt.Errorf("changing directory: %w", err)
			}
		}

		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load(".")
		}
		if err != nil {
			return err
		}

		runner = tooling.NewRunner(logger, tooling.WithTimeout(timeout))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "run as if started in this directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default "+config.DefaultFile+" in the current directory)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "per-tool execution timeout")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(lintExamplesCmd)
	rootCmd.AddCommand(ciCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(protoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "repoctl: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// usageError carries the exit code 2 convention for bad invocations.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func exitCode(err error) int {
	if _, ok := err.(usageError); ok {
		return 2
	}
	return 1
}

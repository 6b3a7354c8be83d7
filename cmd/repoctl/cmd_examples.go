package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"

	"repoctl/internal/examples"
)

var lintExamplesCmd = &cobra.Command{
	Use:   "lint-examples [path...]",
	Short: "Lint Go code examples embedded in doc comments and markdown",
	Long: `Extracts every ` + "```go" + ` fence from doc comments and markdown files,
reconstructs each as a standalone snippet with the original file's import
context, and pipes it through the configured external checker.

Exits 1 when any example has diagnostics.`,
	RunE: runLintExamples,
}

func runLintExamples(cmd *cobra.Command, args []string) error {
	modulePath, err := currentModulePath()
	if err != nil {
		return err
	}

	linter, err := examples.NewLinter(runner, logger, cfg.Examples.Checker, modulePath, cfg.Examples.Exclude)
	if err != nil {
		return err
	}

	diags, err := linter.LintPaths(cmd.Context(), args)
	if err != nil {
		return err
	}
	for _, d := range diags {
		fmt.Fprintln(cmd.OutOrStdout(), d)
	}
	if len(diags) > 0 {
		return fmt.Errorf("%d example diagnostic(s)", len(diags))
	}
	return nil
}

// currentModulePath reads the module path from the go.mod in the working
// directory; the self dot-import of each example needs it.
func currentModulePath() (string, error) {
	data, err := os.ReadFile("go.mod")
	if err != nil {
		return "", fmt.Errorf("reading go.mod: %w", err)
	}
	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		abs, _ := filepath.Abs(".")
		return "", fmt.Errorf("no module directive in go.mod under %s", abs)
	}
	return modulePath, nil
}

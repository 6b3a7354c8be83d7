package examples

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"repoctl/internal/tooling"
)

// Diagnostic is one finding the external checker reported for an example.
type Diagnostic struct {
	// Path is the file containing the example.
	Path string

	// ExampleLine is the first code line of the example in that file.
	ExampleLine int

	// Message is the checker's output line, verbatim.
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s", d.Path, d.ExampleLine, d.Message)
}

// Linter extracts doc examples and pipes them through the configured
// external checker. It performs no analysis of its own.
type Linter struct {
	runner     *tooling.Runner
	logger     *zap.Logger
	checker    []string
	modulePath string
	exclude    []string
}

// NewLinter creates a linter. checker is the external command line the
// snippets are fed to on stdin; modulePath is the repo's module import path.
func NewLinter(runner *tooling.Runner, logger *zap.Logger, checker []string, modulePath string, exclude []string) (*Linter, error) {
	if len(checker) == 0 {
		return nil, fmt.Errorf("empty checker command")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Linter{
		runner:     runner,
		logger:     logger,
		checker:    checker,
		modulePath: modulePath,
		exclude:    exclude,
	}, nil
}

// LintPaths walks the given files and directories (default ".") and lints
// every example found in Go and markdown files. All diagnostics are
// collected; the error covers only extraction or tool failures.
func (l *Linter) LintPaths(ctx context.Context, paths []string) ([]Diagnostic, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := l.collect(paths)
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic
	for _, file := range files {
		fileDiags, err := l.LintFile(ctx, file)
		if err != nil {
			return diags, err
		}
		diags = append(diags, fileDiags...)
	}
	return diags, nil
}

// LintFile lints every example in one file.
func (l *Linter) LintFile(ctx context.Context, path string) ([]Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var snippets []Snippet
	switch filepath.Ext(path) {
	case ".go":
		snippets, err = FromGoFile(path, src, l.modulePath)
		if err != nil {
			return nil, err
		}
	case ".md":
		snippets = FromMarkdown(path, src)
	default:
		return nil, nil
	}
	if len(snippets) == 0 {
		return nil, nil
	}
	l.logger.Debug("linting examples",
		zap.String("path", path), zap.Int("examples", len(snippets)))

	var diags []Diagnostic
	for _, snippet := range snippets {
		result, err := l.runner.Run(ctx, tooling.Command{
			Binary: l.checker[0],
			Args:   l.checker[1:],
			Stdin:  snippet.Source,
		})
		if err != nil {
			return diags, fmt.Errorf("running checker for %s: %w", path, err)
		}
		if result.ExitCode == 0 && strings.TrimSpace(result.Stderr) == "" {
			continue
		}
		for _, line := range result.OutputLines() {
			diags = append(diags, Diagnostic{
				Path:        snippet.Path,
				ExampleLine: snippet.StartLine,
				Message:     rebase(line, snippet.LineOffset),
			})
		}
	}
	return diags, nil
}

// rebase notes the header shift on diagnostics for examples whose padding
// could not absorb the synthetic header.
func rebase(line string, offset int) string {
	if offset == 0 {
		return line
	}
	return fmt.Sprintf("%s (reported lines are %d ahead of the file)", line, offset)
}

// collect expands the argument paths into the sorted list of lintable
// files, applying the standard skips and the configured excludes.
func (l *Linter) collect(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !seen[root] {
				seen[root] = true
				files = append(files, root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := d.Name()
			if d.IsDir() {
				if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || l.excluded(base)) {
					return filepath.SkipDir
				}
				return nil
			}
			ext := filepath.Ext(base)
			if ext != ".go" && ext != ".md" {
				return nil
			}
			if strings.HasSuffix(base, ".pb.go") || l.excluded(base) {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func (l *Linter) excluded(base string) bool {
	for _, pattern := range l.exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

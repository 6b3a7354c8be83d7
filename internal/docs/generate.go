// Package docs holds the documentation site helpers: reference page
// generation for the site generator, macro variables derived from git
// state, terminal markdown preview, and a watch mode for local editing.
// The site generator itself does all rendering; this package only lays out
// pages and variables for it.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/modfile"

	"repoctl/internal/config"
)

// Generator writes the API reference page tree.
type Generator struct {
	cfg    config.DocsConfig
	logger *zap.Logger
}

// NewGenerator creates a generator for the given docs configuration.
func NewGenerator(cfg config.DocsConfig, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{cfg: cfg, logger: logger}
}

// Generate walks the source tree and writes one markdown page per Go
// package under the output path, plus a SUMMARY.md literate-nav index.
// Returns the relative paths of the written pages.
func (g *Generator) Generate() ([]string, error) {
	modulePath := g.cfg.ModulePath
	if modulePath == "" {
		var err error
		modulePath, err = moduleFromGoMod(g.cfg.SourcePath)
		if err != nil {
			return nil, err
		}
	}

	pkgs, err := goPackages(g.cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages under %s", g.cfg.SourcePath)
	}

	var pages []string
	var nav strings.Builder
	for _, rel := range pkgs {
		importPath := modulePath
		page := "index.md"
		if rel != "." {
			importPath = modulePath + "/" + filepath.ToSlash(rel)
			page = filepath.ToSlash(rel) + ".md"
		}

		target := filepath.Join(g.cfg.OutputPath, filepath.FromSlash(page))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		content := fmt.Sprintf("# `%s`\n\n::: %s\n", importPath, importPath)
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", target, err)
		}

		fmt.Fprintf(&nav, "* [%s](%s)\n", importPath, page)
		pages = append(pages, page)
		g.logger.Debug("wrote reference page",
			zap.String("package", importPath), zap.String("page", target))
	}

	summary := filepath.Join(g.cfg.OutputPath, "SUMMARY.md")
	if err := os.WriteFile(summary, []byte(nav.String()), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", summary, err)
	}
	g.logger.Info("generated reference pages",
		zap.Int("pages", len(pages)), zap.String("output", g.cfg.OutputPath))
	return pages, nil
}

// GenerateProtoPages writes one stub reference page per proto file, linking
// the site nav to the compiler-generated descriptor docs.
func GenerateProtoPages(outputPath string, protoFiles []string) error {
	if len(protoFiles) == 0 {
		return nil
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	var nav strings.Builder
	for _, proto := range protoFiles {
		page := strings.TrimSuffix(filepath.ToSlash(proto), ".proto") + ".md"
		target := filepath.Join(outputPath, filepath.FromSlash(page))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		content := fmt.Sprintf("# `%s`\n\nSee the generated descriptor documentation for `%s`.\n", proto, proto)
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		fmt.Fprintf(&nav, "* [%s](%s)\n", proto, page)
	}
	summary := filepath.Join(outputPath, "SUMMARY.md")
	if err := os.WriteFile(summary, []byte(nav.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", summary, err)
	}
	return nil
}

// goPackages returns the directories under root (relative, sorted) that
// contain at least one non-test Go file.
func goPackages(root string) ([]string, error) {
	found := map[string]bool{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		base := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "testdata" || base == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(base, ".go") || strings.HasSuffix(base, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		found[rel] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	pkgs := make([]string, 0, len(found))
	for rel := range found {
		pkgs = append(pkgs, rel)
	}
	sort.Strings(pkgs)
	return pkgs, nil
}

// moduleFromGoMod reads the module path from the go.mod under root.
func moduleFromGoMod(root string) (string, error) {
	path := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("module path not configured and %s unreadable: %w", path, err)
	}
	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return "", fmt.Errorf("%s has no module directive", path)
	}
	return modulePath, nil
}

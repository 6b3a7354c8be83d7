// Package examples lints the Go code examples embedded in doc comments and
// markdown prose. Each ```go fence is reconstructed into a standalone
// snippet (the original file's imports, a dot-import of its own package,
// and blank-line padding that keeps line numbers faithful) and piped to an
// external static checker.
package examples

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"repoctl/internal/codefence"
)

// FromGoFile reconstructs a snippet for every ```go fence found in the
// file's comments. modulePath is the import path prefix used for the
// self dot-import; path must be relative to the module root.
func FromGoFile(path string, src []byte, modulePath string) ([]Snippet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	imports, err := ImportDecls(src)
	if err != nil {
		return nil, err
	}
	selfImport, err := SelfImport(path, modulePath)
	if err != nil {
		return nil, err
	}

	var snippets []Snippet
	for _, group := range file.Comments {
		text, startLine := commentText(fset, group)
		for _, block := range codefence.Extract(text) {
			if block.Lang != "go" {
				continue
			}
			// Rebase the fence onto file coordinates.
			block.StartLine += startLine - 1
			block.EndLine += startLine - 1
			snippets = append(snippets,
				buildSnippet(path, file.Name.Name, imports, selfImport, block))
		}
	}
	return snippets, nil
}

// FromMarkdown reconstructs a snippet for every ```go fence in a markdown
// file. Markdown examples carry no import context, so they get a bare
// package clause and are only syntax-checked.
func FromMarkdown(path string, src []byte) []Snippet {
	var snippets []Snippet
	for _, block := range codefence.Extract(string(src)) {
		if block.Lang != "go" {
			continue
		}
		snippets = append(snippets, buildSnippet(path, "example", nil, "", block))
	}
	return snippets
}

// commentText recovers the comment group's text with comment markers
// stripped but line structure intact, so fence line numbers inside the text
// map one-to-one onto file lines. Returns the text and the 1-based file
// line of its first line.
func commentText(fset *token.FileSet, group *ast.CommentGroup) (string, int) {
	startLine := fset.Position(group.Pos()).Line
	endLine := fset.Position(group.End()).Line

	lines := make([]string, endLine-startLine+1)
	for _, comment := range group.List {
		pos := fset.Position(comment.Pos())
		for i, line := range strings.Split(comment.Text, "\n") {
			idx := pos.Line - startLine + i
			if idx < 0 || idx >= len(lines) {
				continue
			}
			lines[idx] = stripCommentMarker(line, i == 0)
		}
	}
	return strings.Join(lines, "\n"), startLine
}

// stripCommentMarker removes the syntax around one comment line: the
// leading "// " of line comments, the "/*" and "*/" of block comments, and
// the decorative " * " prefix some block comments use.
func stripCommentMarker(line string, first bool) string {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, "//"):
		trimmed = strings.TrimPrefix(trimmed, "//")
	case first && strings.HasPrefix(trimmed, "/*"):
		trimmed = strings.TrimPrefix(trimmed, "/*")
	case strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "*/"):
		trimmed = strings.TrimPrefix(trimmed, "*")
	}
	trimmed = strings.TrimSuffix(trimmed, "*/")
	return strings.TrimPrefix(trimmed, " ")
}

package examples

import (
	"fmt"
	"strings"

	"repoctl/internal/codefence"
)

// Snippet is a standalone reconstruction of one doc example, ready to be
// piped to the external checker.
type Snippet struct {
	// Path is the file the example came from.
	Path string

	// StartLine is the 1-based line of the example's first code line in
	// the original file.
	StartLine int

	// Source is the full snippet text: padding, synthetic header, code.
	Source string

	// LineOffset is the difference between a line number reported against
	// Source and the corresponding line in the original file. Zero when
	// the header fit above the example, which is the common case.
	LineOffset int
}

// The synthetic header trips linters on its own: the replayed imports are
// mostly unused by any single example and the dot-import is normally
// forbidden. Go lint directives scope to the declaration they precede, so
// each synthetic declaration gets its own suppression line.
const (
	importsDirective = "//nolint:all // replayed import header for the example below"
	selfDirective    = "//nolint:all // the example runs inside its own package"
)

// buildSnippet assembles the padded snippet for one fence.
//
// The layout is: blank padding, package clause, the suppressed import
// header (the file's own imports plus a dot-import of its package), then
// the example body. The padding is sized so the body's first line lands on
// the same line number it has in the original file; when the example sits
// too close to the top of the file for the header to fit, padding floors at
// zero and LineOffset records the shift.
func buildSnippet(path, pkgName string, imports []string, selfImport string, block codefence.Block) Snippet {
	var header strings.Builder
	fmt.Fprintf(&header, "package %s\n", pkgName)
	if len(imports) > 0 {
		header.WriteString(importsDirective)
		header.WriteString("\n")
	}
	for _, decl := range imports {
		header.WriteString(decl)
		header.WriteString("\n")
	}
	if selfImport != "" {
		header.WriteString(selfDirective)
		header.WriteString("\n")
		header.WriteString(selfImport)
		header.WriteString("\n")
	}
	header.WriteString("\n")

	headerLines := strings.Count(header.String(), "\n")
	pad := block.StartLine - headerLines - 1
	offset := 0
	if pad < 0 {
		offset = -pad
		pad = 0
	}

	return Snippet{
		Path:       path,
		StartLine:  block.StartLine,
		Source:     strings.Repeat("\n", pad) + header.String() + block.Code + "\n",
		LineOffset: offset,
	}
}

package examples

import (
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
)

// ImportDecls returns the source text of every import declaration in a Go
// file, in order. Grouped declarations come back as one block, exactly as
// written, so they can be replayed verbatim in a generated snippet.
func ImportDecls(src []byte) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("parsing imports: %w", err)
	}

	var decls []string
	for _, decl := range file.Decls {
		start := fset.Position(decl.Pos()).Offset
		end := fset.Position(decl.End()).Offset
		if start < 0 || end > len(src) || start >= end {
			continue
		}
		decls = append(decls, string(src[start:end]))
	}
	return decls, nil
}

// SelfImport builds a dot-import of the package the file belongs to, so an
// example can refer to the file's identifiers unqualified. path must point
// to a Go file and is interpreted relative to the module root.
func SelfImport(path, modulePath string) (string, error) {
	if filepath.Ext(path) != ".go" {
		return "", fmt.Errorf("%s: not a Go file", path)
	}
	dir := filepath.ToSlash(filepath.Dir(path))

	pkg := modulePath
	if dir != "." && dir != "" {
		pkg = modulePath + "/" + strings.TrimPrefix(dir, "./")
	}
	return fmt.Sprintf("import . %q", pkg), nil
}

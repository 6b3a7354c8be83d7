package examples

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `package widgets

import (
	"fmt"
	"strings"
)

// Widget renders things.
//
// Typical use:
//
//	` + "```go" + `
//	func Example() {
//		fmt.Println(strings.ToUpper(NewWidget().Name))
//	}
//	` + "```" + `
type Widget struct {
	Name string
}

// NewWidget returns a ready widget.
func NewWidget() *Widget {
	return &Widget{Name: "w"}
}
`

func TestImportDecls(t *testing.T) {
	decls, err := ImportDecls([]byte(sampleSource))
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Contains(t, decls[0], `"fmt"`)
	assert.Contains(t, decls[0], `"strings"`)
	assert.True(t, strings.HasPrefix(decls[0], "import ("))
}

func TestImportDecls_NoImports(t *testing.T) {
	decls, err := ImportDecls([]byte("package empty\n"))
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestSelfImport(t *testing.T) {
	got, err := SelfImport("internal/widgets/widget.go", "example.com/repo")
	require.NoError(t, err)
	assert.Equal(t, `import . "example.com/repo/internal/widgets"`, got)
}

func TestSelfImport_RootPackage(t *testing.T) {
	got, err := SelfImport("widget.go", "example.com/repo")
	require.NoError(t, err)
	assert.Equal(t, `import . "example.com/repo"`, got)
}

func TestSelfImport_RejectsNonGoFiles(t *testing.T) {
	_, err := SelfImport("README.md", "example.com/repo")
	require.Error(t, err)
}

func TestFromGoFile_FindsDocExample(t *testing.T) {
	snippets, err := FromGoFile("widgets/widget.go", []byte(sampleSource), "example.com/repo")
	require.NoError(t, err)
	require.Len(t, snippets, 1)

	s := snippets[0]
	assert.Equal(t, "widgets/widget.go", s.Path)
	assert.Equal(t, 13, s.StartLine)
	assert.Contains(t, s.Source, "package widgets")
	assert.Contains(t, s.Source, `import . "example.com/repo/widgets"`)
	assert.Contains(t, s.Source, "fmt.Println(strings.ToUpper(NewWidget().Name))")
}

func TestFromGoFile_HeaderSuppressesLintFindings(t *testing.T) {
	snippets, err := FromGoFile("widgets/widget.go", []byte(sampleSource), "example.com/repo")
	require.NoError(t, err)
	require.Len(t, snippets, 1)

	lines := strings.Split(snippets[0].Source, "\n")
	var suppressions []int
	for i, line := range lines {
		if strings.HasPrefix(line, "//nolint:") {
			suppressions = append(suppressions, i)
		}
	}
	// One directive ahead of the replayed imports, one ahead of the
	// dot-import.
	require.Len(t, suppressions, 2)
	assert.True(t, strings.HasPrefix(lines[suppressions[0]+1], "import ("))
	assert.True(t, strings.HasPrefix(lines[suppressions[1]+1], "import . "))
	// A generated-code marker would make strict checkers skip the snippet.
	assert.NotContains(t, snippets[0].Source, "DO NOT EDIT")
}

func TestFromGoFile_LineNumbersFaithful(t *testing.T) {
	snippets, err := FromGoFile("widgets/widget.go", []byte(sampleSource), "example.com/repo")
	require.NoError(t, err)
	require.Len(t, snippets, 1)

	s := snippets[0]
	require.Zero(t, s.LineOffset)

	// The first body line of the snippet must sit on the same line number
	// it has in the original file.
	lines := strings.Split(s.Source, "\n")
	require.Greater(t, len(lines), s.StartLine)
	assert.Contains(t, lines[s.StartLine-1], "func Example() {")
}

func TestFromGoFile_SkipsOtherLanguages(t *testing.T) {
	src := "package p\n\n// Setup:\n//\n//\t```sh\n//\tmake all\n//\t```\nvar X int\n"
	snippets, err := FromGoFile("p.go", []byte(src), "example.com/repo")
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestFromGoFile_HeaderTooTallRecordsOffset(t *testing.T) {
	// Example right at the top of the file: the generated header cannot
	// fit above it, so the snippet records the shift.
	src := "// ```go\n// var Y = 1\n// ```\npackage p\n"
	snippets, err := FromGoFile("p.go", []byte(src), "example.com/repo")
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Positive(t, snippets[0].LineOffset)
}

func TestFromMarkdown(t *testing.T) {
	md := "# Title\n\n```go\nfunc main() {}\n```\n"
	snippets := FromMarkdown("README.md", []byte(md))
	require.Len(t, snippets, 1)
	assert.Equal(t, 4, snippets[0].StartLine)
	assert.Contains(t, snippets[0].Source, "package example")
	assert.NotContains(t, snippets[0].Source, "import .")
}

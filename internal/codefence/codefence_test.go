package codefence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Basic(t *testing.T) {
	text := "intro\n```go\nx := 1\ny := 2\n```\noutro"
	got := Extract(text)
	want := []Block{{
		Lang:      "go",
		Code:      "x := 1\ny := 2",
		StartLine: 3,
		EndLine:   4,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_MultipleBlocks(t *testing.T) {
	text := "```go\na\n```\ntext\n```python\nb\n```\n"
	got := Extract(text)
	require.Len(t, got, 2)
	assert.Equal(t, "go", got[0].Lang)
	assert.Equal(t, "python", got[1].Lang)
	assert.Equal(t, 2, got[0].StartLine)
	assert.Equal(t, 6, got[1].StartLine)
}

func TestExtract_InfoStringAttributes(t *testing.T) {
	got := Extract("```go title=\"example.go\"\ncode\n```")
	require.Len(t, got, 1)
	assert.Equal(t, "go", got[0].Lang)
}

func TestExtract_IndentedFence(t *testing.T) {
	text := "list:\n  ```go\n  x := 1\n  ```\n"
	got := Extract(text)
	require.Len(t, got, 1)
	assert.Equal(t, "x := 1", got[0].Code)
	assert.Equal(t, 3, got[0].StartLine)
}

func TestExtract_Unterminated(t *testing.T) {
	got := Extract("```go\nx := 1\ny := 2")
	require.Len(t, got, 1)
	assert.Equal(t, "x := 1\ny := 2", got[0].Code)
}

func TestExtract_EmptyBody(t *testing.T) {
	got := Extract("```\n```")
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Code)
	assert.Equal(t, "", got[0].Lang)
	assert.Equal(t, 2, got[0].StartLine)
	assert.Equal(t, 1, got[0].EndLine)
}

func TestExtract_LongerMarkerNeededToClose(t *testing.T) {
	// A ```` fence can contain ``` literally.
	text := "````md\n```go\nnested\n```\n````\n"
	got := Extract(text)
	require.Len(t, got, 1)
	assert.Equal(t, "```go\nnested\n```", got[0].Code)
}

func TestExtract_BacktickInInfoStringIsNotAFence(t *testing.T) {
	got := Extract("``` `not a fence` ```\n")
	assert.Empty(t, got)
}

func TestExtract_NoFences(t *testing.T) {
	assert.Empty(t, Extract("just prose\nwith lines\n"))
}

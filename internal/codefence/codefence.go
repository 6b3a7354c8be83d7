// Package codefence locates triple-backtick code blocks embedded in prose
// (markdown files, doc comments) and returns them with their original line
// numbers, so downstream diagnostics can point back at the source text.
package codefence

import "strings"

// Block is one fenced code block.
type Block struct {
	// Lang is the first word of the fence info string ("go" in ```go),
	// empty for a bare fence.
	Lang string

	// Code is the dedented fence body, without the fence marker lines.
	Code string

	// StartLine is the 1-based line number of the first body line within
	// the scanned text. EndLine is the last body line. An empty body has
	// EndLine == StartLine-1.
	StartLine int
	EndLine   int
}

// Extract scans text in a single pass and returns every fenced block in
// order of appearance. Indented fences (as in doc comments or lists) are
// recognized and their indent is stripped from the body. An unterminated
// fence extends to the end of the text.
func Extract(text string) []Block {
	lines := strings.Split(text, "\n")

	var blocks []Block
	for i := 0; i < len(lines); i++ {
		indent, marker, info, ok := openFence(lines[i])
		if !ok {
			continue
		}

		var body []string
		start := i + 2 // 1-based line after the opening fence
		end := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if closesFence(lines[j], marker) {
				end = j
				break
			}
			body = append(body, dedentLine(lines[j], indent))
		}

		blocks = append(blocks, Block{
			Lang:      langOf(info),
			Code:      strings.Join(body, "\n"),
			StartLine: start,
			EndLine:   start + len(body) - 1,
		})
		i = end
	}
	return blocks
}

// openFence reports whether the line opens a fence, returning its indent,
// the backtick marker, and the info string.
func openFence(line string) (indent, marker, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "```") {
		return "", "", "", false
	}
	indent = line[:len(line)-len(trimmed)]
	n := 0
	for n < len(trimmed) && trimmed[n] == '`' {
		n++
	}
	info = strings.TrimSpace(trimmed[n:])
	// An info string containing a backtick is not a fence opener (CommonMark).
	if strings.Contains(info, "`") {
		return "", "", "", false
	}
	return indent, trimmed[:n], info, true
}

// closesFence reports whether the line closes a fence opened with the given
// marker: at least as many backticks, nothing else.
func closesFence(line, marker string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, marker) {
		return false
	}
	return strings.TrimRight(strings.TrimLeft(trimmed, "`"), " \t") == ""
}

// dedentLine strips the opening fence's indent from a body line when
// present; lines indented differently are kept as-is.
func dedentLine(line, indent string) string {
	if indent == "" {
		return line
	}
	return strings.TrimPrefix(line, indent)
}

// langOf extracts the language from a fence info string, which may carry
// extra attributes (```go title="example.go").
func langOf(info string) string {
	if info == "" {
		return ""
	}
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		return info[:i]
	}
	return info
}

package docs

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// Preview renders a markdown file for the terminal.
func Preview(path string, width int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if width <= 0 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := renderer.Render(string(data))
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	return out, nil
}

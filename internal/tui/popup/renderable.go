package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderable is a display block that negotiates its height with the caller
// and renders into a width-constrained string. DesiredHeight is an upper
// bound, not a promise; the caller may render into less.
type Renderable interface {
	DesiredHeight(width int) int
	Render(width int) string
}

// ColumnLines is a Renderable of vertically stacked pre-styled lines.
type ColumnLines []string

// DesiredHeight implements Renderable.
func (c ColumnLines) DesiredHeight(_ int) int {
	return len(c)
}

// Render implements Renderable, truncating each line to width.
func (c ColumnLines) Render(width int) string {
	if width <= 0 {
		return ""
	}
	clip := lipgloss.NewStyle().MaxWidth(width)
	out := make([]string, len(c))
	for i, line := range c {
		out[i] = clip.Render(line)
	}
	return strings.Join(out, "\n")
}

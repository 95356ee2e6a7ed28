package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ProgressBar renders a bar for pct (0..100) followed by the percentage.
func ProgressBar(pct, width int) string {
	if width < 5 {
		width = 5
	}
	pct = max(0, min(pct, 100))
	filled := pct * width / 100
	t := Current()
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames content with the theme's border.
func Panel(content string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(content)
}

// Truncate cuts s to at most width terminal cells, ending in "…".
func Truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

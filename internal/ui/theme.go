package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles + symbols + box border.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected, Help                          lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymCross        string
	BarFull, BarEmpty        string
}

var current = build("classic")

// SetTheme switches the active theme; unknown names fall back to classic.
func SetTheme(name string) {
	current = build(name)
}

// Current returns the active theme.
func Current() Theme { return current }

func build(name string) Theme {
	base := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        base.Bold(true).Foreground(lipgloss.Color("201")),
			Muted:        base.Faint(true),
			Accent:       base.Foreground(lipgloss.Color("51")),
			Success:      base.Foreground(lipgloss.Color("46")),
			Error:        base.Foreground(lipgloss.Color("196")).Bold(true),
			Pending:      base.Foreground(lipgloss.Color("226")),
			Done:         base.Foreground(lipgloss.Color("201")).Strikethrough(true),
			Selected:     base.Bold(true).Foreground(lipgloss.Color("51")),
			Help:         base.Faint(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("201"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymCross: "✖",
			BarFull: "█", BarEmpty: "░",
		}
	case "mono":
		return Theme{
			Name:         "mono",
			Title:        base,
			Muted:        base,
			Accent:       base,
			Success:      base,
			Error:        base,
			Pending:      base,
			Done:         base,
			Selected:     base,
			Help:         base,
			Border:       lipgloss.NormalBorder(),
			BorderColor:  lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "ok", SymCross: "error:",
			BarFull: "#", BarEmpty: "-",
		}
	default:
		return Theme{
			Name:         "classic",
			Title:        base.Bold(true),
			Muted:        base.Faint(true),
			Accent:       base.Foreground(lipgloss.Color("12")),
			Success:      base.Foreground(lipgloss.Color("42")),
			Error:        base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      base.Foreground(lipgloss.Color("214")),
			Done:         base.Faint(true).Strikethrough(true),
			Selected:     base.Bold(true).Reverse(true),
			Help:         base.Faint(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymCross: "✖",
			BarFull: "█", BarEmpty: "░",
		}
	}
}

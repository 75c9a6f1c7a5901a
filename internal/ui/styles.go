package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by both screens.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Alert     lipgloss.Style
	Muted     lipgloss.Style
	Cursor    lipgloss.Style
	Done      lipgloss.Style
	BarFill   lipgloss.Style
	BarEmpty  lipgloss.Style
	Stat      lipgloss.Style
	Box       lipgloss.Style
}

// DefaultStyles returns the purple-on-dark palette of the app.
func DefaultStyles() Styles {
	primary := lipgloss.Color("#7c3aed")
	accent := lipgloss.Color("#ec4899")
	muted := lipgloss.Color("#9ca3af")

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(primary).
			Bold(true).
			Padding(0, 1),

		Alert: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444")).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Cursor: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Done: lipgloss.NewStyle().
			Foreground(muted).
			Strikethrough(true),

		BarFill: lipgloss.NewStyle().
			Foreground(accent),

		BarEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#374151")),

		Stat: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),
	}
}

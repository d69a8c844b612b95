package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Two schemes, selected by the user config's theme.
var (
	darkPrimary = lipgloss.Color("#8BC34A")
	darkAccent  = lipgloss.Color("#2196F3")
	darkMuted   = lipgloss.Color("#5c6773")
	darkBorder  = lipgloss.Color("#2a3850")

	lightPrimary = lipgloss.Color("#101F38")
	lightAccent  = lipgloss.Color("#1565C0")
	lightMuted   = lipgloss.Color("#8a919a")
	lightBorder  = lipgloss.Color("#dce0e5")

	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorSuccess = lipgloss.Color("#8BC34A")
)

// theme holds the resolved style set for one color scheme.
type theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	StepActive lipgloss.Style
	StepDone   lipgloss.Style
	StepTodo   lipgloss.Style
	Label      lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Success    lipgloss.Style
	Card       lipgloss.Style
	Badge      lipgloss.Style
}

// newTheme resolves a named scheme; anything but "light" is dark.
func newTheme(name string) theme {
	primary, accent, muted, border := darkPrimary, darkAccent, darkMuted, darkBorder
	if name == "light" {
		primary, accent, muted, border = lightPrimary, lightAccent, lightMuted, lightBorder
	}

	return theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(primary),
		Subtitle:   lipgloss.NewStyle().Foreground(muted),
		StepActive: lipgloss.NewStyle().Bold(true).Foreground(accent),
		StepDone:   lipgloss.NewStyle().Foreground(primary),
		StepTodo:   lipgloss.NewStyle().Foreground(muted),
		Label:      lipgloss.NewStyle().Bold(true),
		Help:       lipgloss.NewStyle().Foreground(muted),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Warning:    lipgloss.NewStyle().Foreground(colorWarning),
		Success:    lipgloss.NewStyle().Foreground(colorSuccess),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Badge: lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}

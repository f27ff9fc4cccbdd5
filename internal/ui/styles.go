package ui

import (
	"github.com/charmbracelet/lipgloss"

	"claimdesk/internal/render"
)

// Styles holds TUI-only styles; report styles live in render.Styles.
var Styles = struct {
	Header       lipgloss.Style // App title bar
	InputFocused lipgloss.Style // Claim input border while editing
	InputBlurred lipgloss.Style // Claim input border while browsing
	Results      lipgloss.Style // Results pane border
	Status       lipgloss.Style // Normal status line text
	StatusError  lipgloss.Style // Failed submission / export
	HelpBox      lipgloss.Style // Leader-key help bar
	Modal        lipgloss.Style // Confirmation modal box
}{
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(render.ColorAccent)),
	InputFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(render.ColorHighlight)),
	InputBlurred: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(render.ColorMuted)),
	Results: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(render.ColorAccent)).
		Padding(0, 1),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(render.ColorAccent)),
	StatusError: render.Styles.Error,
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(render.ColorAccent)).
		Padding(0, 1),
	Modal: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(render.ColorDanger)).
		Padding(1, 2),
}

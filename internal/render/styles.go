package render

import (
	"github.com/charmbracelet/lipgloss"

	"claimdesk/internal/claim"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorDanger    = "196" // Red - for warnings, errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorWarning   = "208" // Orange - for warning details
)

// Styles contains shared style definitions used by the report and the TUI.
var Styles = struct {
	Title        lipgloss.Style // Bold accent color - for panel titles
	TitleWarning lipgloss.Style // Bold danger color - for alert titles

	Box       lipgloss.Style // Standard box with rounded border (highlight border)
	BoxDanger lipgloss.Style // Alert box (danger border)

	Label    lipgloss.Style // Field labels
	Value    lipgloss.Style // Field values from the server
	Fallback lipgloss.Style // Fallback text for absent fields (muted, italic)
	Muted    lipgloss.Style // Dimmed text
	Hint     lipgloss.Style // Help/hint text
	Item     lipgloss.Style // One alert entry
	Details  lipgloss.Style // Inconsistency entries (warning color)
	Error    lipgloss.Style // Error status line
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(0, 1),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Value: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Fallback: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Item: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Error: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
}

// RouteStyle returns the bold style for a route label in the route's colour.
func RouteStyle(r claim.Route) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(r.Color()))
}

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"claimdesk/internal/claim"
	"claimdesk/internal/ui/textutil"
)

const (
	defaultWidth = 80
	minWidth     = 40
)

// Report renders the full analysis: route, reasoning, alerts and the
// extracted-fields table, wrapped to width columns.
func Report(a *claim.Analysis, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	sections := []string{RouteBlock(a, width)}
	if a.HasAlerts() {
		sections = append(sections, AlertsBlock(AlertsFor(a), width))
	}
	sections = append(sections, FieldsBlock(Slots(a), width))
	return strings.Join(sections, "\n")
}

// RouteBlock renders the recommended route and the reasoning text.
func RouteBlock(a *claim.Analysis, width int) string {
	var b strings.Builder
	b.WriteString(Styles.Label.Render("Recommended Route") + "\n")
	b.WriteString(RouteStyle(a.RecommendedRoute).Render(a.RecommendedRoute.String()) + "\n")
	if a.Reasoning != "" {
		b.WriteString(Styles.Value.Width(width).Render(a.Reasoning) + "\n")
	}
	return b.String()
}

// AlertsBlock renders the missing/inconsistent field box, or "" when the
// container is hidden.
func AlertsBlock(al Alerts, width int) string {
	if !al.ShowContainer() {
		return ""
	}
	inner := width - Styles.BoxDanger.GetHorizontalFrameSize()

	var parts []string
	if al.ShowMissing() {
		parts = append(parts, Styles.TitleWarning.Render("Missing Fields"))
		for _, f := range al.Missing {
			parts = append(parts, Styles.Item.Width(inner).Render("• "+f))
		}
	}
	if al.ShowInconsistent() {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, Styles.TitleWarning.Render("Inconsistencies"))
		for _, f := range al.Inconsistent {
			parts = append(parts, Styles.Details.Width(inner).Render("• "+f))
		}
	}
	return Styles.BoxDanger.Render(strings.Join(parts, "\n")) + "\n"
}

// FieldsBlock renders slots as a two-column label/value table. Long values
// wrap under the value column.
func FieldsBlock(slots []Slot, width int) string {
	labelWidth := 0
	for _, s := range slots {
		if w := textutil.VisualWidth(s.Label); w > labelWidth {
			labelWidth = w
		}
	}
	valueWidth := width - labelWidth - 2
	if valueWidth < 10 {
		valueWidth = 10
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Extracted Fields") + "\n")
	for _, s := range slots {
		style := Styles.Value
		if s.Fallback {
			style = Styles.Fallback
		}
		label := Styles.Label.Render(textutil.PadRightVisual(s.Label, labelWidth))
		value := style.Width(valueWidth).Render(s.Value)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, "  ", value) + "\n")
	}
	return b.String()
}

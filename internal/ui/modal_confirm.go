package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"claimdesk/internal/render"
)

// ConfirmModal asks a yes/no question. Enter or y confirms; Esc or n cancels.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string // Optional warning details
	OnConfirm func() tea.Msg
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:     title,
		Label:     label,
		OnConfirm: onConfirm,
	}
}

// WithDetails adds warning details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewClearConfirmModal confirms discarding the input and current analysis.
func NewClearConfirmModal(hasAnalysis bool) *ConfirmModal {
	m := NewConfirmModal(
		"Clear claim?",
		"The claim text will be removed.",
		func() tea.Msg { return ClearMsg{} },
	)
	if hasAnalysis {
		m.WithDetails("The current analysis will be discarded (export it first to keep it).")
	}
	return m
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter", "y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := render.Styles.TitleWarning.Render(m.Title) + "\n\n"
	content += m.Label
	if m.Details != "" {
		content += "\n" + render.Styles.Details.Render(m.Details)
	}
	content += "\n\n" + render.Styles.Hint.Render("y/Enter: confirm  n/Esc: cancel")
	return Styles.Modal.Render(content)
}

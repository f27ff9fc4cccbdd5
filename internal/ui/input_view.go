package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultInputWidth  = 78
	defaultInputHeight = 10
)

// InputView is the free-text claim input.
type InputView struct {
	textarea textarea.Model
}

// Ensure InputView implements View.
var _ View = (*InputView)(nil)

// NewInputView creates a focused, empty claim input.
func NewInputView() *InputView {
	ta := textarea.New()
	ta.Placeholder = "Paste claim text (e.g. an ACORD 80 loss notice)…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(defaultInputWidth)
	ta.SetHeight(defaultInputHeight)
	ta.Focus()
	return &InputView{textarea: ta}
}

// Init implements View.
func (v *InputView) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements View.
func (v *InputView) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	v.textarea, cmd = v.textarea.Update(msg)
	return v, cmd
}

// View implements View.
func (v *InputView) View() string {
	style := Styles.InputBlurred
	if v.textarea.Focused() {
		style = Styles.InputFocused
	}
	return style.Render(v.textarea.View())
}

// Value returns the raw input text.
func (v *InputView) Value() string {
	return v.textarea.Value()
}

// Content returns the input with surrounding whitespace removed; this is
// what gets submitted.
func (v *InputView) Content() string {
	return strings.TrimSpace(v.textarea.Value())
}

// SetValue replaces the input text.
func (v *InputView) SetValue(s string) {
	v.textarea.SetValue(s)
}

// Reset empties the input.
func (v *InputView) Reset() {
	v.textarea.Reset()
}

// Focus gives the input keyboard focus.
func (v *InputView) Focus() tea.Cmd {
	return v.textarea.Focus()
}

// Blur removes keyboard focus.
func (v *InputView) Blur() {
	v.textarea.Blur()
}

// Focused reports whether the input has focus.
func (v *InputView) Focused() bool {
	return v.textarea.Focused()
}

// SetSize fits the input (including its border) into width x height.
func (v *InputView) SetSize(width, height int) {
	frame := Styles.InputFocused.GetHorizontalFrameSize()
	if w := width - frame; w > 20 {
		v.textarea.SetWidth(w)
	}
	if h := height - Styles.InputFocused.GetVerticalFrameSize(); h > 2 {
		v.textarea.SetHeight(h)
	}
}

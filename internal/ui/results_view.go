package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"claimdesk/internal/claim"
	"claimdesk/internal/render"
)

const (
	defaultResultsWidth  = 78
	defaultResultsHeight = 16
)

// ResultsView shows the rendered analysis with scrollback.
// Hidden until the first successful submission and again after Clear.
type ResultsView struct {
	analysis *claim.Analysis
	viewport viewport.Model
	width    int
}

// Ensure ResultsView implements View.
var _ View = (*ResultsView)(nil)

// NewResultsView creates an empty, hidden results pane.
func NewResultsView() *ResultsView {
	return &ResultsView{
		viewport: viewport.New(defaultResultsWidth, defaultResultsHeight),
		width:    defaultResultsWidth,
	}
}

// Init implements View.
func (r *ResultsView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (r *ResultsView) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

// View implements View. Returns "" while hidden.
func (r *ResultsView) View() string {
	if !r.Visible() {
		return ""
	}
	return Styles.Results.Render(r.viewport.View())
}

// Visible reports whether there is an analysis to show.
func (r *ResultsView) Visible() bool {
	return r.analysis != nil
}

// Analysis returns the analysis on display, or nil.
func (r *ResultsView) Analysis() *claim.Analysis {
	return r.analysis
}

// SetAnalysis shows a and scrolls back to the top.
func (r *ResultsView) SetAnalysis(a *claim.Analysis) {
	r.analysis = a
	r.refresh()
	r.viewport.GotoTop()
}

// Hide discards the displayed analysis.
func (r *ResultsView) Hide() {
	r.analysis = nil
	r.viewport.SetContent("")
}

// SetSize fits the pane (including its border) into width x height.
func (r *ResultsView) SetSize(width, height int) {
	w := width - Styles.Results.GetHorizontalFrameSize()
	h := height - Styles.Results.GetVerticalFrameSize()
	if w < 40 {
		w = 40
	}
	if h < 3 {
		h = 3
	}
	r.width = w
	r.viewport.Width = w
	r.viewport.Height = h
	r.refresh()
}

func (r *ResultsView) refresh() {
	if r.analysis == nil {
		return
	}
	r.viewport.SetContent(render.Report(r.analysis, r.width))
}

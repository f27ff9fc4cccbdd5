package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"claimdesk/internal/claim"
	"claimdesk/internal/client"
	"claimdesk/internal/export"
	"claimdesk/internal/logging"
	"claimdesk/internal/render"
)

// Deps wires the app to the outside world.
type Deps struct {
	Processor client.Processor
	Log       *logrus.Logger
	ExportDir string
	ServerURL string // shown in the header
}

// AppModel is the root model: claim input on top, results below, a status
// line and the leader-key help bar at the bottom.
type AppModel struct {
	Mode       Mode
	Input      *InputView
	Results    *ResultsView
	KeyHandler *KeyHandler
	Overlays   OverlayStack

	Processor client.Processor
	Log       *logrus.Logger
	ExportDir string
	ServerURL string
	Now       func() time.Time

	// Loading is true while a submission is in flight.
	Loading bool
	// Status is the one-line message under the panes; StatusErr marks it as a failure.
	Status    string
	StatusErr bool

	spinner spinner.Model
	// seq identifies the current submission; responses carrying an older
	// seq belong to a cleared session and are dropped.
	seq    int
	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model.
func NewAppModel(deps Deps) *AppModel {
	log := deps.Log
	if log == nil {
		log = logging.Discard()
	}
	exportDir := deps.ExportDir
	if exportDir == "" {
		exportDir = "."
	}
	return &AppModel{
		Mode:       ModeEditing,
		Input:      NewInputView(),
		Results:    NewResultsView(),
		KeyHandler: NewKeyHandler(defaultKeybinds()),
		Processor:  deps.Processor,
		Log:        log,
		ExportDir:  exportDir,
		ServerURL:  deps.ServerURL,
		Now:        time.Now,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(Styles.Status),
		),
	}
}

// defaultKeybinds registers the browse-mode keys and the SPC leader menu.
func defaultKeybinds() *KeybindRegistry {
	reg := NewKeybindRegistry()
	focus := func() tea.Msg { return FocusInputMsg{} }
	reg.Bind("i", focus)
	reg.Bind("tab", focus)
	reg.Bind("q", tea.Quit)
	reg.BindWithDesc("SPC i", focus, "Edit claim")
	reg.BindWithDesc("SPC p", func() tea.Msg { return SubmitMsg{} }, "Process")
	reg.BindWithDesc("SPC s", func() tea.Msg { return LoadSampleMsg{} }, "Sample")
	reg.BindWithDesc("SPC c", func() tea.Msg { return ShowClearConfirmMsg{} }, "Clear")
	reg.BindWithDesc("SPC e j", func() tea.Msg { return ExportMsg{Format: export.FormatJSON} }, "JSON")
	reg.BindWithDesc("SPC e x", func() tea.Msg { return ExportMsg{Format: export.FormatXLSX} }, "Excel")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Input.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil
	case spinner.TickMsg:
		if !a.Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case SubmitMsg:
		return a, a.submit()
	case ClaimProcessedMsg:
		a.handleProcessed(msg)
		return a, nil
	case LoadSampleMsg:
		a.Input.SetValue(claim.SampleACORD)
		a.setStatus("Loaded ACORD sample", false)
		return a, a.focusInput()
	case ShowClearConfirmMsg:
		a.Overlays.Push(NewClearConfirmModal(a.Results.Visible()))
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case ClearMsg:
		a.clear()
		return a, a.focusInput()
	case ExportMsg:
		return a, a.export(msg.Format)
	case ExportedMsg:
		if msg.Err != nil {
			a.Log.WithError(msg.Err).Error("export failed")
			a.setStatus("Export failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.Log.WithField("path", msg.Path).Info("analysis exported")
		a.setStatus("Exported to "+msg.Path, false)
		return a, nil
	case FocusInputMsg:
		return a, a.focusInput()
	}

	// Anything else (cursor blink and the like) belongs to the input.
	_, cmd := a.Input.Update(msg)
	return a, cmd
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if a.Mode == ModeEditing {
		switch msg.String() {
		case "ctrl+s":
			return func() tea.Msg { return SubmitMsg{} }
		case "ctrl+l":
			return func() tea.Msg { return LoadSampleMsg{} }
		case "esc":
			a.browse()
			return nil
		}
		_, cmd := a.Input.Update(msg)
		return cmd
	}

	if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
		return cmd
	}
	// Unbound keys scroll the results.
	_, cmd := a.Results.Update(msg)
	return cmd
}

// submit starts a request for the current input. It is a no-op for empty
// input and while another submission is pending.
func (a *appModelAdapter) submit() tea.Cmd {
	content := a.Input.Content()
	if content == "" || a.Loading {
		return nil
	}
	if a.Processor == nil {
		a.setStatus("No claims endpoint configured", true)
		return nil
	}
	a.seq++
	a.Loading = true
	a.setStatus("", false)
	a.Log.WithFields(logrus.Fields{"seq": a.seq, "chars": len(content)}).Debug("submitting claim")
	return tea.Batch(processCmd(a.Processor, a.seq, content), a.spinner.Tick)
}

func (a *appModelAdapter) handleProcessed(msg ClaimProcessedMsg) {
	if msg.Seq != a.seq {
		a.Log.WithField("seq", msg.Seq).Debug("dropping stale analysis")
		return
	}
	a.Loading = false
	if msg.Err != nil {
		a.Log.WithError(msg.Err).Error("claim submission failed")
		a.setStatus("Submission failed: "+msg.Err.Error(), true)
		return
	}
	if msg.Analysis == nil {
		return
	}
	wasVisible := a.Results.Visible()
	a.Results.SetAnalysis(msg.Analysis)
	if !wasVisible {
		a.layout()
	}
	a.setStatus("Routed to "+msg.Analysis.RecommendedRoute.String(), false)
}

func (a *appModelAdapter) clear() {
	for a.Overlays.Len() > 0 {
		a.Overlays.Pop()
	}
	a.Input.Reset()
	a.Results.Hide()
	a.seq++
	a.Loading = false
	a.setStatus("Cleared", false)
	a.layout()
}

func (a *appModelAdapter) export(f export.Format) tea.Cmd {
	an := a.Results.Analysis()
	if an == nil {
		a.setStatus("Nothing to export yet", true)
		return nil
	}
	return exportCmd(f, an, a.ExportDir, a.Now())
}

func (a *appModelAdapter) focusInput() tea.Cmd {
	a.Mode = ModeEditing
	a.KeyHandler.Reset()
	return a.Input.Focus()
}

func (a *appModelAdapter) browse() {
	a.Mode = ModeBrowsing
	a.Input.Blur()
}

func (a *AppModel) setStatus(s string, isErr bool) {
	a.Status = s
	a.StatusErr = isErr
}

// layout splits the terminal between input and results. Header and
// status take one line each.
func (a *AppModel) layout() {
	if a.width == 0 || a.height == 0 {
		return
	}
	avail := a.height - 2
	if !a.Results.Visible() {
		a.Input.SetSize(a.width, avail)
		return
	}
	inputH := max(avail/3, 5)
	a.Input.SetSize(a.width, inputH)
	a.Results.SetSize(a.width, avail-inputH)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top, ok := a.Overlays.Peek(); ok {
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, top.View())
		}
		return top.View()
	}

	header := Styles.Header.Render("claimdesk") + " " + render.Styles.Muted.Render("["+a.Mode.String()+"]")
	if a.ServerURL != "" {
		header += " " + render.Styles.Muted.Render(a.ServerURL)
	}
	parts := []string{header, a.Input.View()}
	if a.Results.Visible() {
		parts = append(parts, a.Results.View())
	}
	parts = append(parts, a.statusLine())
	if a.KeyHandler.LeaderWaiting {
		parts = append(parts, RenderKeybindHelp(a.KeyHandler))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *appModelAdapter) statusLine() string {
	switch {
	case a.Loading:
		return a.spinner.View() + " " + Styles.Status.Render("Analyzing claim…")
	case a.Status != "" && a.StatusErr:
		return Styles.StatusError.Render(a.Status)
	case a.Status != "":
		return Styles.Status.Render(a.Status)
	case a.Mode == ModeEditing:
		return render.Styles.Hint.Render("ctrl+s process  ctrl+l sample  esc browse  ctrl+c quit")
	default:
		return render.Styles.Hint.Render("SPC menu  i edit  ↑/↓ scroll  q quit")
	}
}

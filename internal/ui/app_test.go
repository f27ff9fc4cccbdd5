package ui

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/claim"
	"claimdesk/internal/client"
	"claimdesk/internal/export"
)

const analysisJSON = `{
  "recommendedRoute": "Fast-track",
  "reasoning": "Low damage, single vehicle.",
  "missingFields": ["Police report number"],
  "inconsistentFields": [],
  "extractedFields": {
    "policy": {"policy_number": "POL-1"},
    "asset": {"estimated_damage": 1200},
    "claim_type": "Collision",
    "initial_estimate": null,
    "extra": "kept"
  }
}`

// fakeProcessor records submissions and replies with a canned result.
type fakeProcessor struct {
	mu       sync.Mutex
	calls    []string
	analysis *claim.Analysis
	err      error
}

var _ client.Processor = (*fakeProcessor)(nil)

func (f *fakeProcessor) Process(_ context.Context, content string) (*claim.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, content)
	return f.analysis, f.err
}

func (f *fakeProcessor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func mustAnalysis(t *testing.T) *claim.Analysis {
	t.Helper()
	a, err := claim.Decode([]byte(analysisJSON))
	require.NoError(t, err)
	return a
}

func newTestApp(t *testing.T, p client.Processor) (*AppModel, *appModelAdapter) {
	t.Helper()
	m := NewAppModel(Deps{Processor: p, ExportDir: t.TempDir()})
	m.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	// A static cursor keeps Focus from returning blink timers.
	m.Input.textarea.Cursor.SetMode(cursor.CursorStatic)
	adapter := m.AsTeaModel().(*appModelAdapter)
	adapter.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return m, adapter
}

// runCmd executes cmd and feeds the produced messages back into the model,
// expanding batches. Spinner ticks are dropped so the loop terminates.
func runCmd(adapter *appModelAdapter, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg, spinner.TickMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(adapter, c)
		}
	default:
		_, next := adapter.Update(msg)
		runCmd(adapter, next)
	}
}

// press sends key presses one by one, running whatever they produce.
func press(adapter *appModelAdapter, keys ...tea.KeyMsg) {
	for _, k := range keys {
		_, cmd := adapter.Update(k)
		runCmd(adapter, cmd)
	}
}

func typeText(adapter *appModelAdapter, s string) {
	_, cmd := adapter.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	runCmd(adapter, cmd)
}

func TestNewAppModel_StartsEditingWithHiddenResults(t *testing.T) {
	m, adapter := newTestApp(t, &fakeProcessor{})

	assert.Equal(t, ModeEditing, m.Mode)
	assert.True(t, m.Input.Focused())
	assert.False(t, m.Results.Visible())
	assert.Contains(t, adapter.View(), "ctrl+s process")
	assert.Contains(t, adapter.View(), "[Editing]")
}

func TestSubmit_EmptyInputIsNoOp(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)

	typeText(adapter, "   ")
	press(adapter, keyMsg("ctrl+s"))

	assert.Equal(t, 0, p.callCount())
	assert.False(t, m.Loading)
	assert.False(t, m.Results.Visible())
}

func TestSubmit_ShowsAnalysis(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)

	typeText(adapter, "  rear-ended at a light  ")
	press(adapter, keyMsg("ctrl+s"))

	require.Equal(t, 1, p.callCount())
	assert.Equal(t, "rear-ended at a light", p.calls[0])
	assert.False(t, m.Loading)
	require.True(t, m.Results.Visible())
	assert.Equal(t, claim.RouteFastTrack, m.Results.Analysis().RecommendedRoute)
	assert.False(t, m.StatusErr)

	view := adapter.View()
	assert.Contains(t, view, "Fast-track")
	assert.Contains(t, view, "POL-1")
	assert.Contains(t, view, "Police report number")
}

func TestSubmit_IgnoredWhilePending(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)
	typeText(adapter, "claim")

	// First submit: keep the command instead of running it.
	_, pending := adapter.Update(SubmitMsg{})
	require.NotNil(t, pending)
	assert.True(t, m.Loading)
	assert.Contains(t, adapter.View(), "Analyzing claim")

	_, second := adapter.Update(SubmitMsg{})
	assert.Nil(t, second)

	runCmd(adapter, pending)
	assert.Equal(t, 1, p.callCount())
	assert.False(t, m.Loading)
}

func TestSubmit_FailureKeepsPreviousAnalysis(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)
	typeText(adapter, "claim")
	press(adapter, keyMsg("ctrl+s"))
	prev := m.Results.Analysis()
	require.NotNil(t, prev)

	p.analysis = nil
	p.err = &client.StatusError{StatusCode: 500, Detail: "boom"}
	press(adapter, keyMsg("ctrl+s"))

	assert.Equal(t, 2, p.callCount())
	assert.False(t, m.Loading)
	assert.Same(t, prev, m.Results.Analysis())
	assert.True(t, m.StatusErr)
	assert.Contains(t, m.Status, "boom")
	assert.Contains(t, adapter.View(), "Submission failed")
}

func TestSubmit_FirstFailureShowsNoResults(t *testing.T) {
	p := &fakeProcessor{err: errors.New("connection refused")}
	m, adapter := newTestApp(t, p)
	typeText(adapter, "claim")
	press(adapter, keyMsg("ctrl+s"))

	assert.False(t, m.Results.Visible())
	assert.True(t, m.StatusErr)
}

func TestLoadSample(t *testing.T) {
	m, adapter := newTestApp(t, &fakeProcessor{})
	press(adapter, keyMsg("ctrl+l"))
	assert.Equal(t, claim.SampleACORD, m.Input.Value())

	// SPC s from browse mode also loads it and returns to the input.
	m.Input.Reset()
	press(adapter, keyMsg("esc"), keyMsg(" "), keyMsg("s"))
	assert.Equal(t, claim.SampleACORD, m.Input.Value())
	assert.Equal(t, ModeEditing, m.Mode)
}

func TestEscBrowsesAndTabReturns(t *testing.T) {
	m, adapter := newTestApp(t, &fakeProcessor{})

	press(adapter, keyMsg("esc"))
	assert.Equal(t, ModeBrowsing, m.Mode)
	assert.False(t, m.Input.Focused())
	assert.Contains(t, adapter.View(), "SPC menu")
	assert.Contains(t, adapter.View(), "[Browsing]")

	// Typing in browse mode does not reach the input.
	press(adapter, keyMsg("x"))
	assert.Equal(t, "", m.Input.Value())

	press(adapter, keyMsg("tab"))
	assert.Equal(t, ModeEditing, m.Mode)
	assert.True(t, m.Input.Focused())
}

func TestSpaceTypesWhileEditing(t *testing.T) {
	m, adapter := newTestApp(t, &fakeProcessor{})
	typeText(adapter, "a")
	press(adapter, keyMsg(" "))
	typeText(adapter, "b")

	assert.Equal(t, "a b", m.Input.Value())
	assert.False(t, m.KeyHandler.LeaderWaiting)
}

func TestSPCShowsKeybindHints(t *testing.T) {
	m, adapter := newTestApp(t, &fakeProcessor{})
	press(adapter, keyMsg("esc"), keyMsg(" "))

	require.True(t, m.KeyHandler.LeaderWaiting)
	view := adapter.View()
	for _, hint := range []string{"Process", "Sample", "Clear", "Export", "Quit"} {
		assert.Contains(t, view, hint)
	}

	press(adapter, keyMsg("e"))
	require.True(t, m.KeyHandler.LeaderWaiting)
	view = adapter.View()
	assert.Contains(t, view, "JSON")
	assert.Contains(t, view, "Excel")
}

func TestSPCProcessSubmits(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)
	typeText(adapter, "claim")
	press(adapter, keyMsg("esc"), keyMsg(" "), keyMsg("p"))

	assert.Equal(t, 1, p.callCount())
	assert.True(t, m.Results.Visible())
}

func TestClear_ConfirmDiscardsAnalysis(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)
	typeText(adapter, "claim")
	press(adapter, keyMsg("ctrl+s"))
	require.True(t, m.Results.Visible())

	press(adapter, keyMsg("esc"), keyMsg(" "), keyMsg("c"))
	require.Equal(t, 1, m.Overlays.Len())
	top, _ := m.Overlays.Peek()
	modal, ok := top.(*ConfirmModal)
	require.True(t, ok, "expected ConfirmModal, got %T", top)
	assert.NotEmpty(t, modal.Details)
	assert.Contains(t, adapter.View(), "Clear claim?")

	press(adapter, keyMsg("y"))
	assert.Equal(t, 0, m.Overlays.Len())
	assert.Equal(t, "", m.Input.Value())
	assert.False(t, m.Results.Visible())
	assert.Nil(t, m.Results.Analysis())
	assert.Equal(t, ModeEditing, m.Mode)
}

func TestClear_CancelWithEsc(t *testing.T) {
	m, adapter := newTestApp(t, &fakeProcessor{})
	typeText(adapter, "keep me")
	press(adapter, keyMsg("esc"), keyMsg(" "), keyMsg("c"))
	require.Equal(t, 1, m.Overlays.Len())

	press(adapter, keyMsg("esc"))
	assert.Equal(t, 0, m.Overlays.Len())
	assert.Equal(t, "keep me", m.Input.Value())
}

func TestClear_DropsLateResponse(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)
	typeText(adapter, "claim")

	_, pending := adapter.Update(SubmitMsg{})
	require.NotNil(t, pending)
	adapter.Update(ClearMsg{})
	assert.False(t, m.Loading)

	runCmd(adapter, pending)
	assert.False(t, m.Results.Visible())
}

func TestExport_NothingToExport(t *testing.T) {
	m, adapter := newTestApp(t, &fakeProcessor{})
	_, cmd := adapter.Update(ExportMsg{Format: export.FormatJSON})

	assert.Nil(t, cmd)
	assert.True(t, m.StatusErr)
	entries, err := os.ReadDir(m.ExportDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExport_JSONMatchesResponse(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)
	typeText(adapter, "claim")
	press(adapter, keyMsg("ctrl+s"))

	press(adapter, keyMsg("esc"), keyMsg(" "), keyMsg("e"), keyMsg("j"))

	path := filepath.Join(m.ExportDir, "claim_analysis_1700000000000.json")
	assert.Contains(t, m.Status, path)
	assert.False(t, m.StatusErr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got, want any
	require.NoError(t, json.Unmarshal(data, &got))
	require.NoError(t, json.Unmarshal([]byte(analysisJSON), &want))
	assert.Equal(t, want, got)
}

func TestExport_XLSX(t *testing.T) {
	p := &fakeProcessor{analysis: mustAnalysis(t)}
	m, adapter := newTestApp(t, p)
	typeText(adapter, "claim")
	press(adapter, keyMsg("ctrl+s"))

	press(adapter, keyMsg("esc"), keyMsg(" "), keyMsg("e"), keyMsg("x"))

	_, err := os.Stat(filepath.Join(m.ExportDir, "claim_analysis_1700000000000.xlsx"))
	assert.NoError(t, err)
}

func TestCtrlCQuits(t *testing.T) {
	_, adapter := newTestApp(t, &fakeProcessor{})
	_, cmd := adapter.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

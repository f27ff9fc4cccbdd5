package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"claimdesk/internal/claim"
	"claimdesk/internal/client"
	"claimdesk/internal/export"
)

// processCmd returns a command that submits content and reports the outcome
// as a ClaimProcessedMsg. The client's own timeout bounds the request.
func processCmd(p client.Processor, seq int, content string) tea.Cmd {
	return func() tea.Msg {
		a, err := p.Process(context.Background(), content)
		return ClaimProcessedMsg{Seq: seq, Analysis: a, Err: err}
	}
}

// exportCmd returns a command that writes a to dir in the given format.
func exportCmd(f export.Format, a *claim.Analysis, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Write(f, a, dir, now)
		return ExportedMsg{Path: path, Err: err}
	}
}

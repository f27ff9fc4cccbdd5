package ui

import (
	"claimdesk/internal/claim"
	"claimdesk/internal/export"
)

// SubmitMsg asks the app to send the current input (ctrl+s or SPC p).
type SubmitMsg struct{}

// ClaimProcessedMsg carries the outcome of a submission. Seq ties it to the
// submission that started it so results from a cleared session are dropped.
type ClaimProcessedMsg struct {
	Seq      int
	Analysis *claim.Analysis
	Err      error
}

// LoadSampleMsg replaces the input with the ACORD sample (ctrl+l or SPC s).
type LoadSampleMsg struct{}

// ShowClearConfirmMsg opens the clear confirmation (SPC c).
type ShowClearConfirmMsg struct{}

// ClearMsg empties the input and discards the current analysis.
type ClearMsg struct{}

// ExportMsg requests an export of the current analysis (SPC e j / SPC e x).
type ExportMsg struct {
	Format export.Format
}

// ExportedMsg reports where an export was written, or why it failed.
type ExportedMsg struct {
	Path string
	Err  error
}

// FocusInputMsg returns focus to the claim input (i, tab or SPC i).
type FocusInputMsg struct{}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// Package ui is the interactive claim desk built on Bubble Tea.
//
// The screen has three regions:
//   - InputView: the claim text area (bubbles/textarea)
//   - ResultsView: the rendered analysis in a scrollable viewport
//   - status line: spinner while a submission is in flight, errors, export paths
//
// Esc leaves the input; SPC then opens the leader-key menu. Modals such as
// the clear confirmation sit on an OverlayStack and receive keys first.
package ui

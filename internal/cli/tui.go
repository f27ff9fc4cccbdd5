package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"claimdesk/internal/ui"
)

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive claim desk (default)",
		Long: `Open the terminal UI: paste or type a claim, press ctrl+s to submit and
browse the analysis. Esc leaves the input; SPC then opens the command menu
(process, sample, clear, export, quit).

Logs are written to the log file only (log.file).`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationFileLog: "true"},
		RunE:        e.runTUI,
	}
}

func (e *env) runTUI(cmd *cobra.Command, _ []string) error {
	m := ui.NewAppModel(ui.Deps{
		Processor: e.newProcessor(e),
		Log:       e.log,
		ExportDir: e.cfg.Export.Dir,
		ServerURL: e.cfg.ProcessURL(),
	})
	e.log.WithField("server", e.cfg.ProcessURL()).Info("starting claim desk")

	p := tea.NewProgram(m.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(e.stdin),
		tea.WithOutput(e.stdout),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"claimdesk/internal/claim"
	"claimdesk/internal/export"
	"claimdesk/internal/jsonutil"
	"claimdesk/internal/render"
)

const reportWidth = 80

type processOptions struct {
	json   bool
	export string
	sample bool
}

func newProcessCmd(e *env) *cobra.Command {
	var opts processOptions
	cmd := &cobra.Command{
		Use:   "process [file|-]",
		Short: "Submit one claim and print the analysis",
		Long: `Submit a single claim document and print the recommended route, alerts
and extracted fields. The claim is read from the given file, or from stdin
when the argument is "-" or omitted.

Example:
  claimdesk process loss_notice.txt
  claimdesk process --sample --json
  cat loss_notice.txt | claimdesk process - --export xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runProcess(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the raw analysis as indented JSON")
	cmd.Flags().StringVar(&opts.export, "export", "", "also export the analysis (json or xlsx) to export.dir")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "submit the built-in ACORD 80 sample")
	return cmd
}

func (e *env) runProcess(cmd *cobra.Command, args []string, opts processOptions) error {
	var format export.Format
	if opts.export != "" {
		f, err := export.ParseFormat(opts.export)
		if err != nil {
			return err
		}
		format = f
	}

	content, err := e.readClaim(args, opts.sample)
	if err != nil {
		return err
	}

	a, err := e.newProcessor(e).Process(cmd.Context(), content)
	if err != nil {
		return fmt.Errorf("process claim: %w", err)
	}

	if opts.json {
		data, err := jsonutil.Indent(a.Raw, "  ")
		if err != nil {
			return fmt.Errorf("format analysis: %w", err)
		}
		fmt.Fprintln(e.stdout, string(data))
	} else {
		fmt.Fprintln(e.stdout, render.Report(a, reportWidth))
	}

	if format != "" {
		path, err := export.Write(format, a, e.cfg.Export.Dir, time.Now())
		if err != nil {
			return fmt.Errorf("export analysis: %w", err)
		}
		fmt.Fprintf(e.stderr, "Exported to %s\n", path)
	}
	return nil
}

// readClaim returns the claim text from the sample, a file or stdin.
func (e *env) readClaim(args []string, sample bool) (string, error) {
	if sample {
		if len(args) > 0 {
			return "", errors.New("--sample cannot be combined with a file argument")
		}
		return claim.SampleACORD, nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read claim: %w", err)
	}
	return string(data), nil
}

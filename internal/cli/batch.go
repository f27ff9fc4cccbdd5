package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"claimdesk/internal/claim"
	"claimdesk/internal/client"
	"claimdesk/internal/export"
	"claimdesk/internal/ui/textutil"
)

const (
	batchNameWidth  = 32
	batchRouteWidth = 20
)

// batchResult is the outcome for one claim file.
type batchResult struct {
	File     string
	Analysis *claim.Analysis
	Export   string
	Err      error
}

func newBatchCmd(e *env) *cobra.Command {
	var exportFlag string
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Submit every *.txt claim in a directory",
		Long: `Batch submits each *.txt file in dir, one at a time, paced by batch.rate
requests per second (burst batch.burst). One summary line is printed per
file. Ctrl+C stops after the current file.

The command exits non-zero if any file failed.

Example:
  claimdesk batch ./claims
  claimdesk batch ./claims --export json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runBatch(cmd, args[0], exportFlag)
		},
	}
	cmd.Flags().StringVar(&exportFlag, "export", "", "export each analysis (json or xlsx) to export.dir")
	return cmd
}

func (e *env) runBatch(cmd *cobra.Command, dir, exportFlag string) error {
	var format export.Format
	if exportFlag != "" {
		f, err := export.ParseFormat(exportFlag)
		if err != nil {
			return err
		}
		format = f
	}

	files, err := claimFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *.txt claims in %s", dir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	limiter := rate.NewLimiter(rate.Limit(e.cfg.Batch.Rate), max(e.cfg.Batch.Burst, 1))
	b := &batchRunner{env: e, limiter: limiter, format: format}

	start := time.Now()
	results := b.run(ctx, files)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	fmt.Fprintf(e.stderr, "\n%d claims, %d failed, %s\n",
		len(results), failed, time.Since(start).Round(time.Millisecond))

	if err := ctx.Err(); err != nil && len(results) < len(files) {
		return fmt.Errorf("batch interrupted after %d of %d claims", len(results), len(files))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d claims failed", failed, len(results))
	}
	return nil
}

// claimFiles lists dir/*.txt in name order.
func claimFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

type batchRunner struct {
	env     *env
	limiter *rate.Limiter
	format  export.Format
	// lastExport keeps export timestamps strictly increasing so file names
	// never collide within one millisecond.
	lastExport time.Time
}

// run processes files sequentially and prints a line per file. It stops
// early when ctx is canceled; results cover only the files attempted.
func (b *batchRunner) run(ctx context.Context, files []string) []batchResult {
	p := b.env.newProcessor(b.env)
	results := make([]batchResult, 0, len(files))
	for _, file := range files {
		if err := b.limiter.Wait(ctx); err != nil {
			b.env.log.WithError(err).Warn("batch stopped")
			break
		}
		r := b.one(ctx, p, file)
		results = append(results, r)
		b.print(r)
		if errors.Is(r.Err, context.Canceled) {
			break
		}
	}
	return results
}

func (b *batchRunner) one(ctx context.Context, p client.Processor, file string) batchResult {
	r := batchResult{File: file}
	log := b.env.log.WithField("file", filepath.Base(file))

	data, err := os.ReadFile(file)
	if err != nil {
		r.Err = fmt.Errorf("read claim: %w", err)
		log.WithError(err).Error("batch claim failed")
		return r
	}
	a, err := p.Process(ctx, string(data))
	if err != nil {
		r.Err = err
		log.WithError(err).Error("batch claim failed")
		return r
	}
	r.Analysis = a

	if b.format != "" {
		now := time.Now()
		if !now.After(b.lastExport.Add(time.Millisecond)) {
			now = b.lastExport.Add(time.Millisecond)
		}
		b.lastExport = now
		path, err := export.Write(b.format, a, b.env.cfg.Export.Dir, now)
		if err != nil {
			r.Err = fmt.Errorf("export: %w", err)
			log.WithError(err).Error("batch export failed")
			return r
		}
		r.Export = path
	}
	log.WithFields(logrus.Fields{
		"route":   a.RecommendedRoute,
		"missing": len(a.MissingFields),
	}).Debug("batch claim processed")
	return r
}

func (b *batchRunner) print(r batchResult) {
	name := textutil.PadRightVisual(filepath.Base(r.File), batchNameWidth)
	if r.Err != nil {
		fmt.Fprintf(b.env.stdout, "✗ %s  %s\n", name, textutil.OneLine(r.Err.Error()))
		return
	}
	route := textutil.PadRightVisual(r.Analysis.RecommendedRoute.String(), batchRouteWidth)
	line := fmt.Sprintf("✓ %s  %s  missing=%d", name, route, len(r.Analysis.MissingFields))
	if r.Export != "" {
		line += "  " + r.Export
	}
	fmt.Fprintln(b.env.stdout, line)
}

// Package cli implements the claimdesk command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"claimdesk/internal/client"
	"claimdesk/internal/config"
	"claimdesk/internal/logging"
	"claimdesk/internal/trace"
)

// annotationFileLog marks commands whose logs must stay off the terminal.
const annotationFileLog = "claimdesk/file-log"

// env is the state shared by every command for one invocation.
type env struct {
	cfgFile string
	server  string
	verbose bool
	noCache bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	v        *viper.Viper
	cfg      *config.Config
	log      *logrus.Logger
	closeLog io.Closer
	shutdown trace.ShutdownFunc

	// newProcessor builds the submission client; tests swap it out.
	newProcessor func(e *env) client.Processor
}

// Execute runs the root command with the process's stdio.
func Execute() error {
	return NewRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute()
}

// NewRootCmd builds the full command tree. Running it without a subcommand
// starts the terminal UI.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	e := &env{
		stdin:        stdin,
		stdout:       stdout,
		stderr:       stderr,
		newProcessor: newClient,
	}

	root := &cobra.Command{
		Use:   "claimdesk",
		Short: "claimdesk - submit insurance claims for automated triage",
		Long: `claimdesk sends free-text claim documents (for example an ACORD 80
automobile loss notice) to a claims-processing service and shows the
recommended route, the reasoning behind it, missing or inconsistent
information and the extracted claim fields.

Run without arguments to open the interactive terminal UI.`,
		SilenceErrors:      true,
		SilenceUsage:       true,
		Annotations:        map[string]string{annotationFileLog: "true"},
		PersistentPreRunE: e.setup,
		RunE:              e.runTUI,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&e.cfgFile, "config", "", "config file (default: $HOME/.claimdesk/config.yaml)")
	flags.StringVar(&e.server, "server", "", "claims service base URL (overrides server.base_url)")
	flags.BoolVarP(&e.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&e.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(
		newTUICmd(e),
		newProcessCmd(e),
		newBatchCmd(e),
		newConfigCmd(e),
		newVersionCmd(e),
	)
	e.withTeardown(root)
	return root
}

// setup resolves configuration, opens the log and installs tracing.
func (e *env) setup(cmd *cobra.Command, _ []string) error {
	e.v = config.New(e.cfgFile)
	if err := config.ReadFile(e.v); err != nil {
		return err
	}
	if e.server != "" {
		e.v.Set("server.base_url", e.server)
	}
	if e.verbose {
		e.v.Set("log.level", "debug")
	}
	if e.noCache {
		e.v.Set("cache.enabled", false)
	}

	cfg, err := config.Load(e.v)
	if err != nil {
		return err
	}
	e.cfg = cfg

	opts := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	if !fileLogOnly(cmd) {
		opts.Out = e.stderr
	}
	log, closer, err := logging.New(opts)
	if err != nil {
		return err
	}
	e.log, e.closeLog = log, closer
	if used := e.v.ConfigFileUsed(); used != "" {
		e.log.WithField("file", used).Debug("config loaded")
	}

	shutdown, err := trace.Setup(cmd.Context(), "claimdesk")
	if err != nil {
		e.log.WithError(err).Warn("tracing disabled")
		shutdown = func(context.Context) error { return nil }
	}
	e.shutdown = shutdown
	return nil
}

// teardown flushes spans and closes the log file. Safe to call twice.
func (e *env) teardown(cmd *cobra.Command) error {
	if e.shutdown != nil {
		if err := e.shutdown(context.WithoutCancel(cmd.Context())); err != nil {
			e.log.WithError(err).Warn("trace shutdown")
		}
		e.shutdown = nil
	}
	if e.closeLog != nil {
		err := e.closeLog.Close()
		e.closeLog = nil
		return err
	}
	return nil
}

// withTeardown wraps the RunE of cmd and its subcommands so teardown runs
// whether or not the command fails; cobra skips post-run hooks after a
// RunE error.
func (e *env) withTeardown(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) (err error) {
			defer func() {
				if terr := e.teardown(c); err == nil {
					err = terr
				}
			}()
			return run(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		e.withTeardown(sub)
	}
}

// fileLogOnly reports whether cmd (or the command it defaults to) owns the
// terminal, in which case logs go to the log file only.
func fileLogOnly(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationFileLog] == "true"
}

func newClient(e *env) client.Processor {
	ttl := e.cfg.Cache.TTL
	if !e.cfg.Cache.Enabled {
		ttl = 0
	}
	return client.New(client.Options{
		URL:       e.cfg.ProcessURL(),
		Timeout:   e.cfg.Server.Timeout,
		UserAgent: e.cfg.Server.UserAgent,
		CacheTTL:  ttl,
		Logger:    e.log,
	})
}

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Needs no config, log or tracing.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(e.stdout, "claimdesk v%s\n", config.Version)
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"claimdesk/internal/config"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage claimdesk configuration",
		Long: `Manage claimdesk configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CLAIMDESK_*)
3. Config file (~/.claimdesk/config.yaml)
4. Defaults`,
	}
	cmd.AddCommand(newConfigShowCmd(e), newConfigInitCmd(e))
	return cmd
}

func newConfigShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if used := e.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(e.stderr, "Configuration file: %s\n\n", used)
			} else {
				fmt.Fprintf(e.stderr, "No configuration file found (using defaults)\n\n")
			}
			data, err := config.Marshal(*e.cfg)
			if err != nil {
				return err
			}
			_, err = e.stdout.Write(data)
			return err
		},
	}
}

func newConfigInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Create a configuration file with every option set to its default, at
the --config path or ~/.claimdesk/config.yaml. An existing file is left
untouched.`,
		Args: cobra.NoArgs,
		// The file may not exist yet; loading it is init's job.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := e.cfgFile
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return fmt.Errorf("find home directory: %w", err)
				}
				path = p
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "Wrote %s\n", path)
			return nil
		},
	}
}

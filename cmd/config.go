package cmd

import (
	"fmt"

	"github.com/grovetools/navshell/cli"
	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/logging"
	"github.com/grovetools/navshell/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd returns the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate navshell configuration",
		Long: `Configuration is merged from, in increasing precedence:
1. Global config ($XDG_CONFIG_HOME/navshell/navshell.yml)
2. Project config (navshell.yml, .navshell.yml or navshell.toml, searched upward)
3. Override file (navshell.override.yml next to the project config)`,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(cmd, cfg)
			}

			out := cmd.OutOrStdout()
			for _, src := range cfg.Sources() {
				fmt.Fprintf(out, "# Source: %s\n", src)
			}
			if len(cfg.Sources()) == 0 {
				fmt.Fprintln(out, "# Source: defaults")
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for navshell.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := schema.Raw()
			if generate, _ := cmd.Flags().GetBool("generate"); generate {
				var err error
				if data, err = config.GenerateSchema(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().Bool("generate", false, "Reflect the schema from the Go types instead of printing the embedded copy")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Validate a config file, or the discovered layers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if len(args) == 1 {
				cfg, err = config.Load(args[0])
			} else {
				cfg, err = cli.LoadConfig(cmd)
			}
			if err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Success("Configuration is valid")
			for _, src := range cfg.Sources() {
				pretty.Path("Source", src)
			}
			pretty.Field("Not found", cfg.Shell.NotFound)
			pretty.Field("Services", len(cfg.Services))
			pretty.Field("Knowledge", len(cfg.Knowledge.Sources))
			return nil
		},
	}
}

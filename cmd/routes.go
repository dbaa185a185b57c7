package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/navshell/cli"
	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/pkg/client"
	"github.com/grovetools/navshell/routes"
	"github.com/grovetools/navshell/tui/theme"
	"github.com/spf13/cobra"
)

// NewRoutesCmd returns the command that lists the route table.
func NewRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the declared routes",
		Long: `List the route table in declaration order. Paths are matched exactly;
there are no parameters, wildcards or nested routes.

Examples:
  navshell routes
  # only routes under a glob
  navshell routes --filter '/s*'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			c := client.New(cfg.Server)
			defer c.Close()

			list, err := c.Routes(cmd.Context())
			if err != nil {
				return err
			}
			if patterns, _ := cmd.Flags().GetStringSlice("filter"); len(patterns) > 0 {
				tbl, err := routes.NewTable(list...)
				if err != nil {
					return err
				}
				if list, err = tbl.Filter(patterns); err != nil {
					return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --filter pattern")
				}
			}

			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(cmd, list)
			}
			fmt.Fprintln(cmd.OutOrStdout(), routesTable(list))
			return nil
		},
	}
	cmd.Flags().StringSlice("filter", nil, "Only show routes whose path matches a glob pattern")
	return cmd
}

func routesTable(list []routes.Route) string {
	t := theme.DefaultTheme
	rows := make([][]string, 0, len(list))
	for i, r := range list {
		rows = append(rows, []string{fmt.Sprint(i + 1), r.Path, theme.Icons.ForPage(string(r.Page)) + " " + r.Label})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border)).
		Headers("#", "PATH", "PAGE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.TableHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

// NewResolveCmd returns the command that reports which page a path mounts.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve PATH",
		Short: "Show which page a location path maps to",
		Long: `Match PATH exactly against the route table. The path is not normalized:
"/messages/" and "/Messages" do not match "/messages".

Examples:
  navshell resolve /knowledge
  navshell resolve /nonexistent --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			c := client.New(cfg.Server)
			defer c.Close()

			res, err := c.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			strict, _ := cmd.Flags().GetBool("strict")

			if cli.GetOptions(cmd).JSONOutput {
				if err := writeJSON(cmd, res); err != nil {
					return err
				}
			} else if res.Matched {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", res.Path, theme.Icons.Arrow, res.Label)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", res.Path, theme.DefaultTheme.Warning.Render("(no route)"))
			}

			if strict && !res.Matched {
				return errors.RouteNotFound(res.Path)
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "Exit non-zero when the path has no route")
	return cmd
}

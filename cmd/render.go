package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/pkg/profiling"
	"github.com/grovetools/navshell/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewRenderCmd returns the command that renders one path to stdout.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render PATH",
		Short: "Render the shell for a path without starting a server",
		Long: `Render the layout and the page mounted for PATH. The layout is always
written; for an undeclared path the content area follows shell.not_found.
A page failure is rendered as an error panel and the command exits non-zero.

Examples:
  navshell render / --format html > index.html
  navshell render /settings --format text --width 100`,
		Args: cobra.ExactArgs(1),
		RunE: runRenderE,
	}
	cmd.Flags().String("format", "text", "Output format: html or text")
	cmd.Flags().Int("width", 0, "Terminal width for text output (default: detected, or 100)")
	cmd.Flags().Int("height", 0, "Clip text output to this many lines")
	cmd.Flags().Bool("strict", false, "Exit non-zero when the path has no route")
	return cmd
}

func runRenderE(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "html" && format != "text" {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown format '%s' (want html or text)", format))
	}

	setup := profiling.Step("setup")
	a, err := newApp(cmd)
	setup.Stop()
	if err != nil {
		return err
	}

	ctx, trace := profiling.StartTrace(cmd.Context(), format, args[0])
	defer trace.Stop()
	res := a.shell.Resolve(args[0])
	a.shell.Visit(res, "cli")

	out := cmd.OutOrStdout()
	var failed error
	if format == "html" {
		result, err := a.shell.RenderHTML(ctx, out, res)
		if err != nil {
			return err
		}
		failed = result.Failed
	} else {
		tui.InitializeTUI()
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		if width <= 0 {
			width = 100
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
		}
		result, text := a.shell.RenderText(ctx, res, width, height)
		fmt.Fprintln(out, text)
		failed = result.Failed
	}

	if failed != nil {
		return failed
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict && !res.Matched {
		return errors.RouteNotFound(res.Path)
	}
	return nil
}

// Package cmd wires navshell's cobra commands.
package cmd

import (
	"github.com/grovetools/navshell/cli"
	"github.com/grovetools/navshell/pkg/profiling"
	"github.com/grovetools/navshell/version"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the navshell command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"navshell",
		"A five-page navigation shell served over HTTP and in the terminal",
	)
	cli.SetVersionTemplate(root, version.GetInfo())

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(root)
	root.PersistentPreRunE = profiler.PreRun
	root.PersistentPostRun = profiler.PostRun

	root.AddCommand(
		NewServeCmd(),
		NewStopCmd(),
		NewStatusCmd(),
		NewRoutesCmd(),
		NewResolveCmd(),
		NewRenderCmd(),
		NewTuiCmd(),
		NewConfigCmd(),
		NewLogsCmd(),
		NewEventsCmd(),
		NewPathsCmd(),
		cli.NewVersionCommand("navshell"),
	)

	cli.ApplyStyledHelpRecursive(root)
	return root
}

package cmd

import (
	"context"
	"time"

	"github.com/grovetools/navshell/logging"
	"github.com/grovetools/navshell/state"
	"github.com/grovetools/navshell/tui/navview"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewTuiCmd returns the command that runs the terminal shell.
func NewTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [PATH]",
		Short: "Open the navigation shell in the terminal",
		Long: `Open the shell in the terminal, starting at PATH (default: the
location shown when the terminal shell last exited, else "/").
Press 1-5 to jump between pages, tab to cycle, ':' to type any path and
'?' for help. Configuration changes are picked up while it runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("tui")
			start := "/"
			if len(args) == 1 {
				start = args[0]
			} else if last, err := state.GetString(state.LastPathKey); err != nil {
				logger.WithError(err).Debug("Could not read last location")
			} else if last != "" {
				start = last
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			cfg := a.config()

			updates := a.store.Subscribe()
			defer a.store.Unsubscribe(updates)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			g, gctx := errgroup.WithContext(ctx)

			if err := startWatcher(gctx, g, a, cfg.WatchEnabled(), time.Duration(cfg.Watch.DebounceMs)*time.Millisecond); err != nil {
				logger.WithError(err).Warn("Config hot reload disabled")
			}
			g.Go(func() error {
				defer cancel()
				last, err := navview.Run(gctx, a.shell, start, updates)
				if last != "" {
					if serr := state.Set(state.LastPathKey, last); serr != nil {
						logger.WithError(serr).Debug("Could not save last location")
					}
				}
				return err
			})
			return g.Wait()
		},
	}
}

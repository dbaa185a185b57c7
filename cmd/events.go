package cmd

import (
	"fmt"
	"io"

	"github.com/grovetools/navshell/cli"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/pkg/client"
	"github.com/grovetools/navshell/tui/theme"
	"github.com/spf13/cobra"
)

// NewEventsCmd returns the command that prints the running server's event log.
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show navigations, page failures and config reloads from the running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			c := client.New(cfg.Server)
			defer c.Close()

			jsonOut := cli.GetOptions(cmd).JSONOutput
			out := cmd.OutOrStdout()

			if follow, _ := cmd.Flags().GetBool("follow"); follow {
				updates, err := c.Stream(cmd.Context())
				if err != nil {
					return err
				}
				for u := range updates {
					if jsonOut {
						if err := writeJSON(cmd, u.Payload); err != nil {
							return err
						}
						continue
					}
					printEvent(out, u.Payload)
				}
				return nil
			}

			limit, _ := cmd.Flags().GetInt("limit")
			events, err := c.Events(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, events)
			}
			// Oldest first, like a log.
			for i := len(events) - 1; i >= 0; i-- {
				printEvent(out, events[i])
			}
			return nil
		},
	}
	cmd.Flags().BoolP("follow", "f", false, "Stream new events as they happen")
	cmd.Flags().IntP("limit", "n", 20, "Number of recent events to show")
	return cmd
}

func printEvent(w io.Writer, e store.Event) {
	t := theme.DefaultTheme
	var detail string
	switch {
	case e.Kind == store.EventNavigation && e.Matched:
		detail = fmt.Sprintf("%s %s %s", e.Path, theme.Icons.Arrow, e.Page)
	case e.Kind == store.EventNavigation:
		detail = e.Path + " " + t.Warning.Render("(unmatched)")
	case e.Kind == store.EventPageError:
		detail = t.Error.Render(fmt.Sprintf("%s %s", e.Path, e.Message))
	default:
		detail = e.Message
	}
	fmt.Fprintf(w, "%s %-13s %-5s %s\n",
		t.Muted.Render(e.Time.Format("15:04:05")), e.Kind, e.Source, detail)
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/logging"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

// NewLogsCmd returns the command that prints the navshell log file.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the navshell log file",
		Long: `Print today's log file from the navshell state directory.

Examples:
  # last 50 lines
  navshell logs --tail 50

  # follow while a server is running
  navshell logs -f`,
		Args: cobra.NoArgs,
		RunE: runLogsE,
	}
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of the log (default: all)")
	cmd.Flags().String("file", "", "Log file to read (default: today's file)")
	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = logging.DefaultLogFile(time.Now())
	}
	follow, _ := cmd.Flags().GetBool("follow")
	n, _ := cmd.Flags().GetInt("tail")
	out := cmd.OutOrStdout()

	if !follow {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("no log file at %s", path))
			}
			return err
		}
		defer f.Close()
		return printLastLines(out, f, n)
	}

	// Seek near the end so -f starts with the requested context.
	location := &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	if n < 0 {
		location = &tail.SeekInfo{Offset: 0, Whence: io.SeekStart}
	} else if f, err := os.Open(path); err == nil {
		err := printLastLines(out, f, n)
		f.Close()
		if err != nil {
			return err
		}
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Location:  location,
		Logger:    stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return fmt.Errorf("failed to tail %s: %w", path, err)
	}
	defer t.Cleanup()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			fmt.Fprintln(out, line.Text)
		}
	}
}

// printLastLines copies the last n lines of r to w, or all of r when n < 0.
func printLastLines(w io.Writer, r io.Reader, n int) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if n < 0 {
		for scanner.Scan() {
			fmt.Fprintln(w, scanner.Text())
		}
		return scanner.Err()
	}

	ring := make([]string, 0, n)
	for scanner.Scan() {
		if n == 0 {
			continue
		}
		if len(ring) == n {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	for _, line := range ring {
		fmt.Fprintln(w, line)
	}
	return scanner.Err()
}

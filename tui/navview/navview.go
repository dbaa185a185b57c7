// Package navview is the terminal surface of the navigation shell: a
// bubbletea program that renders the same layout and pages as the HTTP
// server through its own navigator.
package navview

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/logging"
	"github.com/grovetools/navshell/shell"
	"github.com/grovetools/navshell/tui"
)

// Run starts the terminal shell at start and blocks until the user quits or
// ctx is cancelled. Log output to stderr is suppressed while the program owns
// the screen. The returned path is the location shown on exit.
func Run(ctx context.Context, sh *shell.Shell, start string, updates <-chan store.Update, opts ...tea.ProgramOption) (string, error) {
	tui.InitializeTUI()

	prev := logging.SetGlobalOutput(io.Discard)
	defer logging.SetGlobalOutput(prev)

	m := New(ctx, sh, start, updates)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	last := m.Current().Path
	if fm, ok := final.(*Model); ok && fm != nil {
		last = fm.Current().Path
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return last, nil
	}
	return last, err
}

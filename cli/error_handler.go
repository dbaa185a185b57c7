package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/tui/theme"
)

// ErrorHandler turns coded errors into actionable messages.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to out.
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose, Out: out}
}

// Handle prints a friendly message for err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	t := theme.DefaultTheme
	icon := t.Error.Render(theme.Icons.Error)
	se, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s Configuration not found\n", icon)
		h.hint("Create navshell.yml or pass --config.")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Out, "%s Invalid configuration: %s\n", icon, messageOf(err, se))
		h.hint("Run 'navshell config validate' for details.")

	case errors.ErrCodeRouteNotFound:
		fmt.Fprintf(h.Out, "%s No route for '%v'\n", icon, detail(se, "path"))
		h.hint("Run 'navshell routes' to see declared paths.")

	case errors.ErrCodeDaemonRunning:
		fmt.Fprintf(h.Out, "%s navshell is already serving (pid %v)\n", icon, detail(se, "pid"))
		h.hint("Stop it with 'navshell stop'.")

	case errors.ErrCodeDaemonNotRunning:
		fmt.Fprintf(h.Out, "%s navshell server is not running\n", icon)
		h.hint("Start it with 'navshell serve'.")

	case errors.ErrCodePermissionDenied:
		fmt.Fprintf(h.Out, "%s Not permitted to signal navshell (pid %v)\n", icon, detail(se, "pid"))
		h.hint("The server was started by another user.")

	case errors.ErrCodeServerStartFailed:
		fmt.Fprintf(h.Out, "%s Could not listen on %v\n", icon, detail(se, "addr"))
		h.hint("Change server.addr or server.socket in navshell.yml.")

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", icon, err)
	}

	if h.Verbose && se != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", se.ToJSON())
	}
	return err
}

func (h *ErrorHandler) hint(s string) {
	fmt.Fprintln(h.Out, theme.DefaultTheme.Muted.Render(s))
}

func messageOf(err error, se *errors.ShellError) string {
	if se == nil {
		return err.Error()
	}
	if se.Cause != nil {
		return se.Message + ": " + se.Cause.Error()
	}
	return se.Message
}

func detail(se *errors.ShellError, key string) any {
	if se == nil || se.Details == nil {
		return "?"
	}
	if v, ok := se.Details[key]; ok {
		return v
	}
	return "?"
}

package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ShellError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ShellError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// RouteNotFound reports a location that matches no declared route.
func RouteNotFound(path string) *ShellError {
	return New(ErrCodeRouteNotFound, fmt.Sprintf("no route declared for '%s'", path)).
		WithDetail("path", path)
}

// PageLoadFailed wraps a failure of a page's own data fetching.
func PageLoadFailed(page string, err error) *ShellError {
	return Wrap(err, ErrCodePageLoadFailed, fmt.Sprintf("page '%s' failed to load", page)).
		WithDetail("page", page)
}

// PageRenderFailed wraps a failure (error or panic) while rendering a page.
func PageRenderFailed(page string, err error) *ShellError {
	return Wrap(err, ErrCodePageRenderFailed, fmt.Sprintf("page '%s' failed to render", page)).
		WithDetail("page", page)
}

// DaemonRunning reports that another shell server holds the pid file.
func DaemonRunning(pid int) *ShellError {
	return New(ErrCodeDaemonRunning, fmt.Sprintf("navshell server already running with PID %d", pid)).
		WithDetail("pid", pid)
}

// ServerStartFailed wraps a listener or serve failure.
func ServerStartFailed(addr string, err error) *ShellError {
	return Wrap(err, ErrCodeServerStartFailed, fmt.Sprintf("failed to start server on %s", addr)).
		WithDetail("addr", addr)
}

// SignalDenied reports that the server process belongs to another user.
func SignalDenied(pid int, err error) *ShellError {
	return Wrap(err, ErrCodePermissionDenied, fmt.Sprintf("not permitted to signal navshell server (PID %d)", pid)).
		WithDetail("pid", pid)
}

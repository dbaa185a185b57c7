// Package paths provides XDG-compliant path resolution for navshell.
//
// Resolution order:
// 1. NAVSHELL_HOME (portable root) → $NAVSHELL_HOME/{config,state,cache,run}
// 2. XDG env vars → $XDG_*_HOME/navshell
// 3. Platform defaults → ~/.config/navshell, ~/.local/state/navshell, etc.
package paths

import (
	"os"
	"path/filepath"
)

const appName = "navshell"

// HomeEnv names the environment variable that relocates every navshell directory.
const HomeEnv = "NAVSHELL_HOME"

// base resolves one XDG base directory: NAVSHELL_HOME/<sub>, then $<xdgVar>/navshell,
// then ~/<fallback>/navshell.
func base(sub, xdgVar string, fallback ...string) string {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Join(home, sub)
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, appName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	parts := append([]string{homeDir}, fallback...)
	return filepath.Join(append(parts, appName)...)
}

// ConfigDir returns the navshell configuration directory.
// Used for the global navshell.yml.
func ConfigDir() string {
	return base("config", "XDG_CONFIG_HOME", ".config")
}

// StateDir returns the navshell state directory (logs, pid file).
func StateDir() string {
	return base("state", "XDG_STATE_HOME", ".local", "state")
}

// CacheDir returns the navshell cache directory.
func CacheDir() string {
	return base("cache", "XDG_CACHE_HOME", ".cache")
}

// LogsDir returns the directory holding per-component log files.
func LogsDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}

// RuntimeDir returns the navshell runtime directory for sockets.
// Uses XDG_RUNTIME_DIR when available (Linux), falls back to StateDir (macOS).
func RuntimeDir() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Join(home, "run")
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return StateDir()
}

// GlobalConfigPath returns the path of the user-wide configuration file.
func GlobalConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "navshell.yml")
}

// SocketPath returns the default unix socket path for the shell server.
func SocketPath() string {
	return filepath.Join(RuntimeDir(), "navshell.sock")
}

// PidFilePath returns the path to the shell server PID file.
func PidFilePath() string {
	return filepath.Join(StateDir(), "navshell.pid")
}

// EnsureDirs creates all navshell directories if they don't exist.
func EnsureDirs() error {
	dirs := []string{
		ConfigDir(),
		StateDir(),
		LogsDir(),
		CacheDir(),
		RuntimeDir(),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

package config

import (
	"github.com/grovetools/navshell/routes"
	"github.com/grovetools/navshell/util/pathutil"
)

const (
	DefaultVersion = "1.0"
	DefaultTitle   = "navshell"
	DefaultAddr    = "127.0.0.1:7878"
	DefaultTheme   = "kanagawa"
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills unset fields. The not-found policy defaults to the empty
// content area, matching the declared five-route table with no catch-all.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Shell.Title == "" {
		c.Shell.Title = DefaultTitle
	}
	if c.Shell.NotFound == "" {
		c.Shell.NotFound = routes.NotFoundEmpty
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Socket != "" {
		if p, err := pathutil.Expand(c.Server.Socket); err == nil {
			c.Server.Socket = p
		}
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "5s"
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = DefaultTheme
	}
	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = 100
	}
	for i := range c.Services {
		if c.Services[i].Kind == "" {
			c.Services[i].Kind = "other"
		}
	}
}

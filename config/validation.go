package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/grovetools/navshell/errors"
)

var knownThemes = map[string]bool{
	"kanagawa": true,
	"gruvbox":  true,
	"terminal": true,
}

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	if !c.Shell.NotFound.Valid() {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("shell.not_found must be 'empty' or 'page', got '%s'", c.Shell.NotFound)).
			WithDetail("field", "shell.not_found")
	}

	if c.Server.Socket == "" && c.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation,
				fmt.Sprintf("invalid server.addr '%s'", c.Server.Addr)).
				WithDetail("field", "server.addr")
		}
	}

	if c.Server.ShutdownTimeout != "" {
		if d, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil || d <= 0 {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("invalid server.shutdown_timeout '%s'", c.Server.ShutdownTimeout)).
				WithDetail("field", "server.shutdown_timeout")
		}
	}

	if c.TUI.Theme != "" && !knownThemes[c.TUI.Theme] {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("unknown tui.theme '%s'", c.TUI.Theme)).
			WithDetail("field", "tui.theme")
	}

	if c.TUI.Icons != "" && c.TUI.Icons != "nerd" && c.TUI.Icons != "ascii" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("tui.icons must be 'nerd' or 'ascii', got '%s'", c.TUI.Icons)).
			WithDetail("field", "tui.icons")
	}

	if c.Watch.DebounceMs < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "watch.debounce_ms cannot be negative").
			WithDetail("field", "watch.debounce_ms")
	}

	seen := make(map[string]bool, len(c.Services))
	for i, svc := range c.Services {
		if err := validateService(svc); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation,
				fmt.Sprintf("invalid service at index %d", i)).
				WithDetail("service", svc.Name)
		}
		if seen[svc.Name] {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("duplicate service name '%s'", svc.Name)).
				WithDetail("service", svc.Name)
		}
		seen[svc.Name] = true
	}

	for i, src := range c.Knowledge.Sources {
		if src.Name == "" || src.Path == "" {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("knowledge source at index %d needs a name and a path", i))
		}
	}

	return nil
}

func validateService(svc ServiceEntry) error {
	if svc.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "service name cannot be empty")
	}
	u, err := url.Parse(svc.URL)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "service url does not parse").
			WithDetail("url", svc.URL)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New(errors.ErrCodeInvalidInput, "service url must be absolute (scheme://host)").
			WithDetail("url", svc.URL)
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/grovetools/navshell/routes"
	"github.com/mitchellh/mapstructure"
)

//go:generate go run ../tools/schema-generator/

// ShellConfig controls the layout chrome and routing fallbacks.
type ShellConfig struct {
	Title    string                `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty" jsonschema:"description=Title shown in the layout header"`
	NotFound routes.NotFoundPolicy `yaml:"not_found,omitempty" toml:"not_found,omitempty" json:"not_found,omitempty" jsonschema:"enum=empty,enum=page,description=What to render for undeclared paths: empty content area or an explicit not-found page"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr            string `yaml:"addr,omitempty" toml:"addr,omitempty" json:"addr,omitempty" jsonschema:"description=TCP listen address (default: 127.0.0.1:7878)"`
	Socket          string `yaml:"socket,omitempty" toml:"socket,omitempty" json:"socket,omitempty" jsonschema:"description=Unix socket path; when set the server listens here instead of addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty" toml:"shutdown_timeout,omitempty" json:"shutdown_timeout,omitempty" jsonschema:"description=Graceful shutdown window (default: 5s)"`
	Metrics         *bool  `yaml:"metrics,omitempty" toml:"metrics,omitempty" json:"metrics,omitempty" jsonschema:"description=Expose Prometheus metrics on /metrics (default: true)"`
}

// TUIConfig holds terminal appearance settings.
type TUIConfig struct {
	Theme string `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"enum=kanagawa,enum=gruvbox,enum=terminal,description=Color theme for the terminal shell"`
	Icons string `yaml:"icons,omitempty" toml:"icons,omitempty" json:"icons,omitempty" jsonschema:"enum=nerd,enum=ascii,description=Icon set for navigation tabs (default: nerd)"`
}

// ServiceEntry declares a backend service listed on the Services page.
type ServiceEntry struct {
	Name        string `yaml:"name" toml:"name" json:"name" jsonschema:"required,description=Display name of the service"`
	Kind        string `yaml:"kind,omitempty" toml:"kind,omitempty" json:"kind,omitempty" jsonschema:"enum=model,enum=rag,enum=sync,enum=analytics,enum=other,description=Kind of backend"`
	URL         string `yaml:"url" toml:"url" json:"url" jsonschema:"required,description=Base URL of the service"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty" jsonschema:"description=Human-readable description"`
}

// KnowledgeSource declares a document collection listed on the Knowledge page.
type KnowledgeSource struct {
	Name string `yaml:"name" toml:"name" json:"name" jsonschema:"required,description=Display name of the source"`
	Path string `yaml:"path" toml:"path" json:"path" jsonschema:"required,description=Directory or URL holding the documents"`
	Kind string `yaml:"kind,omitempty" toml:"kind,omitempty" json:"kind,omitempty" jsonschema:"description=Free-form kind label (e.g. markdown or pdf)"`
}

// KnowledgeConfig groups knowledge sources.
type KnowledgeConfig struct {
	Sources []KnowledgeSource `yaml:"sources,omitempty" toml:"sources,omitempty" json:"sources,omitempty" jsonschema:"description=Knowledge sources shown on the Knowledge page"`
}

// WatchConfig controls config hot reload.
type WatchConfig struct {
	Enabled    *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty" jsonschema:"description=Reload configuration when the file changes (default: true)"`
	DebounceMs int   `yaml:"debounce_ms,omitempty" toml:"debounce_ms,omitempty" json:"debounce_ms,omitempty" jsonschema:"minimum=0,description=Debounce window for rapid writes in milliseconds (default: 100)"`
}

// Config is the navshell configuration file (navshell.yml / navshell.toml).
type Config struct {
	Version   string          `yaml:"version" toml:"version" json:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`
	Shell     ShellConfig     `yaml:"shell,omitempty" toml:"shell,omitempty" json:"shell" jsonschema:"description=Layout and routing settings"`
	Server    ServerConfig    `yaml:"server,omitempty" toml:"server,omitempty" json:"server" jsonschema:"description=HTTP server settings"`
	TUI       TUIConfig       `yaml:"tui,omitempty" toml:"tui,omitempty" json:"tui" jsonschema:"description=Terminal shell settings"`
	Services  []ServiceEntry  `yaml:"services,omitempty" toml:"services,omitempty" json:"services,omitempty" jsonschema:"description=Backend services listed on the Services page"`
	Knowledge KnowledgeConfig `yaml:"knowledge,omitempty" toml:"knowledge,omitempty" json:"knowledge" jsonschema:"description=Knowledge sources"`
	Watch     WatchConfig     `yaml:"watch,omitempty" toml:"watch,omitempty" json:"watch" jsonschema:"description=Config hot reload"`

	// Extensions captures all other top-level keys (e.g. "logging").
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`

	sources []string
}

// Sources lists the files that contributed to this config, lowest precedence first.
func (c *Config) Sources() []string {
	out := make([]string, len(c.sources))
	copy(out, c.sources)
	return out
}

// ShutdownTimeout parses Server.ShutdownTimeout, falling back to 5s.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// MetricsEnabled reports whether /metrics is exposed.
func (c *Config) MetricsEnabled() bool {
	return c.Server.Metrics == nil || *c.Server.Metrics
}

// WatchEnabled reports whether hot reload is on.
func (c *Config) WatchEnabled() bool {
	return c.Watch.Enabled == nil || *c.Watch.Enabled
}

// UnmarshalExtension decodes the extension stored under key into target.
// A missing key leaves target untouched.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

package page

import (
	"context"
	"html/template"

	"github.com/grovetools/navshell/routes"
	"gopkg.in/yaml.v3"
)

// Settings shows the effective configuration.
type Settings struct {
	Config ConfigSource
}

// SettingsData is the loaded state of the Settings page.
type SettingsData struct {
	YAML    string
	Sources []string
}

func (s *Settings) Name() routes.PageID { return routes.Settings }
func (s *Settings) Title() string       { return "Settings" }

func (s *Settings) Load(ctx context.Context) (any, error) {
	if s.Config == nil || s.Config.Config() == nil {
		return SettingsData{}, nil
	}
	cfg := s.Config.Config()
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return SettingsData{YAML: string(out), Sources: cfg.Sources()}, nil
}

func (s *Settings) HTML(data any) (template.HTML, error) {
	sd, ok := data.(SettingsData)
	if !ok {
		return "", wrongData(s.Name(), data)
	}
	return execute("settings", sd)
}

func (s *Settings) Text(data any, width int) (string, error) {
	sd, ok := data.(SettingsData)
	if !ok {
		return "", wrongData(s.Name(), data)
	}
	if sd.YAML == "" {
		return heading(s.Title(), empty("No configuration loaded.")), nil
	}
	sources := empty("Built-in defaults")
	if len(sd.Sources) > 0 {
		sources = empty("Loaded from:")
		for _, src := range sd.Sources {
			sources += "\n  " + src
		}
	}
	return heading(s.Title(), sources, "", sd.YAML), nil
}

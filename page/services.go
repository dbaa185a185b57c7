package page

import (
	"context"
	"html/template"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/routes"
)

// Services lists the backend endpoints declared under services:.
type Services struct {
	Config ConfigSource
}

// ServicesData is the loaded state of the Services page.
type ServicesData struct {
	Services []config.ServiceEntry
}

func (s *Services) Name() routes.PageID { return routes.Services }
func (s *Services) Title() string       { return "Services" }

func (s *Services) Load(ctx context.Context) (any, error) {
	if s.Config == nil || s.Config.Config() == nil {
		return ServicesData{}, nil
	}
	cfg := s.Config.Config()
	out := make([]config.ServiceEntry, len(cfg.Services))
	copy(out, cfg.Services)
	return ServicesData{Services: out}, nil
}

func (s *Services) HTML(data any) (template.HTML, error) {
	sd, ok := data.(ServicesData)
	if !ok {
		return "", wrongData(s.Name(), data)
	}
	return execute("services", sd)
}

func (s *Services) Text(data any, width int) (string, error) {
	sd, ok := data.(ServicesData)
	if !ok {
		return "", wrongData(s.Name(), data)
	}
	if len(sd.Services) == 0 {
		return heading(s.Title(), empty("No services configured. Add entries under services: in navshell.yml.")), nil
	}
	rows := make([][]string, 0, len(sd.Services))
	for _, svc := range sd.Services {
		rows = append(rows, []string{svc.Name, svc.Kind, svc.URL, svc.Description})
	}
	return heading(s.Title(), textTable([]string{"Name", "Kind", "URL", "Description"}, rows, width)), nil
}

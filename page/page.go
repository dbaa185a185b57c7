// Package page defines the content components mounted inside the layout.
//
// Each page loads its own data through a narrow source interface and renders
// it twice: as an HTML fragment for the web surface and as styled text for the
// terminal surface. Pages never render the surrounding chrome.
package page

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/routes"
)

// Page is a single content component.
type Page interface {
	Name() routes.PageID
	Title() string
	// Load fetches the page's data. It is called once per render.
	Load(ctx context.Context) (any, error)
	HTML(data any) (template.HTML, error)
	Text(data any, width int) (string, error)
}

// StatsSource provides navigation counters.
type StatsSource interface {
	Stats() store.Stats
}

// EventSource provides the recent event log, newest first.
type EventSource interface {
	Recent(n int) []store.Event
}

// ConfigSource provides the running configuration.
type ConfigSource interface {
	Config() *config.Config
}

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"clock":    func(t time.Time) string { return t.Format("15:04:05") },
	"join":     strings.Join,
	"describe": describe,
}).ParseFS(templateFS, "templates/*.html"))

// execute renders the named template definition into an HTML fragment.
func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func wrongData(p routes.PageID, data any) error {
	return fmt.Errorf("page %s: unexpected data type %T", p, data)
}

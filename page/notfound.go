package page

import (
	"context"
	"html/template"

	"github.com/grovetools/navshell/routes"
)

// NotFound is mounted for undeclared paths when the not-found policy is "page".
type NotFound struct {
	Path   string
	Routes []routes.Route
}

// NotFoundData is the loaded state of the NotFound page.
type NotFoundData struct {
	Path   string
	Routes []routes.Route
}

// NewNotFound builds the not-found page for path, suggesting the declared routes.
func NewNotFound(path string, table *routes.Table) *NotFound {
	nf := &NotFound{Path: path}
	if table != nil {
		nf.Routes = table.Routes()
	}
	return nf
}

func (n *NotFound) Name() routes.PageID { return routes.NotFound }
func (n *NotFound) Title() string       { return "Not Found" }

func (n *NotFound) Load(ctx context.Context) (any, error) {
	return NotFoundData{Path: n.Path, Routes: n.Routes}, nil
}

func (n *NotFound) HTML(data any) (template.HTML, error) {
	nd, ok := data.(NotFoundData)
	if !ok {
		return "", wrongData(n.Name(), data)
	}
	return execute("notfound", nd)
}

func (n *NotFound) Text(data any, width int) (string, error) {
	nd, ok := data.(NotFoundData)
	if !ok {
		return "", wrongData(n.Name(), data)
	}
	body := wrap("Nothing is mounted at "+nd.Path+".", width)
	lines := []string{body, "", empty("Available pages:")}
	for _, r := range nd.Routes {
		lines = append(lines, "  "+r.Path+"  "+r.Label)
	}
	return heading(n.Title(), lines...), nil
}

// Package routes holds the navigation shell's route table.
//
// The table is a literal, ordered list of (path, page) pairs. Matching is an
// exact string comparison against the location path: there are no parameters,
// wildcards or nested routes, and the path is not cleaned, case-folded or
// otherwise transformed before lookup.
package routes

import (
	"fmt"
	"strings"

	"github.com/moby/patternmatcher"
)

// PageID identifies a page component.
type PageID string

const (
	Dashboard PageID = "dashboard"
	Messages  PageID = "messages"
	Services  PageID = "services"
	Knowledge PageID = "knowledge"
	Settings  PageID = "settings"

	// NotFound is never part of a table. It names the page rendered for
	// unmatched locations under NotFoundPage.
	NotFound PageID = "not-found"
)

// Route pairs a location path with the page rendered for it.
type Route struct {
	Path  string `json:"path" yaml:"path"`
	Page  PageID `json:"page" yaml:"page"`
	Label string `json:"label" yaml:"label"`
}

// Table is an immutable, ordered route table with exact-match lookup.
type Table struct {
	routes []Route
	index  map[string]int
}

// NewTable builds a table from routes in declaration order.
// Paths must be absolute, unique, and free of pattern syntax.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		index:  make(map[string]int, len(routes)),
	}
	for _, r := range routes {
		if err := validateRoute(r); err != nil {
			return nil, err
		}
		if _, dup := t.index[r.Path]; dup {
			return nil, fmt.Errorf("duplicate route path %q", r.Path)
		}
		t.index[r.Path] = len(t.routes)
		t.routes = append(t.routes, r)
	}
	return t, nil
}

// Default returns the shell's fixed five-entry table.
func Default() *Table {
	t, err := NewTable(
		Route{Path: "/", Page: Dashboard, Label: "Dashboard"},
		Route{Path: "/messages", Page: Messages, Label: "Messages"},
		Route{Path: "/services", Page: Services, Label: "Services"},
		Route{Path: "/knowledge", Page: Knowledge, Label: "Knowledge"},
		Route{Path: "/settings", Page: Settings, Label: "Settings"},
	)
	if err != nil {
		panic(err)
	}
	return t
}

func validateRoute(r Route) error {
	switch {
	case r.Path == "":
		return fmt.Errorf("route for page %q has an empty path", r.Page)
	case !strings.HasPrefix(r.Path, "/"):
		return fmt.Errorf("route path %q must start with /", r.Path)
	case strings.ContainsAny(r.Path, ":*{}?#"):
		return fmt.Errorf("route path %q contains pattern syntax; only exact paths are supported", r.Path)
	case r.Page == "" || r.Page == NotFound:
		return fmt.Errorf("route path %q needs a page", r.Path)
	}
	return nil
}

// Match returns the route whose path equals path exactly.
func (t *Table) Match(path string) (Route, bool) {
	i, ok := t.index[path]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// IndexOf returns the declaration index of path, or -1.
func (t *Table) IndexOf(path string) int {
	if i, ok := t.index[path]; ok {
		return i
	}
	return -1
}

// At returns the i-th route in declaration order.
func (t *Table) At(i int) Route {
	return t.routes[i]
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Routes returns a copy of the table in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Filter returns the routes whose paths match any of the given
// .dockerignore-style patterns (e.g. "/s*", "!/settings").
// An empty pattern list returns the whole table.
func (t *Table) Filter(patterns []string) ([]Route, error) {
	if len(patterns) == 0 {
		return t.Routes(), nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("invalid route filter: %w", err)
	}
	var out []Route
	for _, r := range t.routes {
		ok, err := pm.MatchesOrParentMatches(r.Path)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", r.Path, err)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

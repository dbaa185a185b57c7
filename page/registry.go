package page

import (
	"fmt"

	"github.com/grovetools/navshell/routes"
)

// Deps wires the built-in pages to their data sources. Nil sources yield
// empty pages.
type Deps struct {
	Table  *routes.Table
	Stats  StatsSource
	Events EventSource
	Config ConfigSource
}

// Registry maps page ids to components.
type Registry struct {
	pages map[routes.PageID]Page
}

// NewRegistry builds a registry, rejecting duplicate ids.
func NewRegistry(pages ...Page) (*Registry, error) {
	r := &Registry{pages: make(map[routes.PageID]Page, len(pages))}
	for _, p := range pages {
		if _, dup := r.pages[p.Name()]; dup {
			return nil, fmt.Errorf("duplicate page %q", p.Name())
		}
		r.pages[p.Name()] = p
	}
	return r, nil
}

// Builtin returns the five standard pages.
func Builtin(d Deps) *Registry {
	r, _ := NewRegistry(
		&Dashboard{Table: d.Table, Stats: d.Stats},
		&Messages{Events: d.Events, Limit: DefaultMessageLimit},
		&Services{Config: d.Config},
		&Knowledge{Config: d.Config},
		&Settings{Config: d.Config},
	)
	return r
}

// Get looks up the page for id.
func (r *Registry) Get(id routes.PageID) (Page, bool) {
	p, ok := r.pages[id]
	return p, ok
}

// With returns a copy of r with p registered under its id, replacing any
// existing page.
func (r *Registry) With(p Page) *Registry {
	out := &Registry{pages: make(map[routes.PageID]Page, len(r.pages)+1)}
	for id, existing := range r.pages {
		out.pages[id] = existing
	}
	out.pages[p.Name()] = p
	return out
}

// Covers reports the first route in table without a registered page.
func (r *Registry) Covers(table *routes.Table) error {
	for _, rt := range table.Routes() {
		if _, ok := r.pages[rt.Page]; !ok {
			return fmt.Errorf("no page registered for route %s (%s)", rt.Path, rt.Page)
		}
	}
	return nil
}

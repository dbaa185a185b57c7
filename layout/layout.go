// Package layout renders the chrome that surrounds every page: header,
// navigation, content slot and footer. The chrome is rendered for every
// path, matched or not.
package layout

import (
	"html/template"

	"github.com/grovetools/navshell/routes"
)

// NavItem is one entry of the navigation sidebar.
type NavItem struct {
	Index  int // 1-based, doubles as the terminal shortcut key
	Path   string
	Label  string
	Page   routes.PageID
	Active bool
}

// Panel describes a page failure caught by the error boundary.
type Panel struct {
	Page    string
	Code    string
	Message string
}

// View is everything the chrome needs for one render.
type View struct {
	Title     string
	Version   string
	Path      string
	Matched   bool
	PageTitle string
	Nav       []NavItem

	// Content is the mounted page's HTML fragment. Empty when nothing is mounted.
	Content template.HTML
	// Text is the mounted page's terminal rendering.
	Text string

	Error *Panel
}

// Nav builds the sidebar from the route table. Only an exact path match is
// marked active, so an unmatched path leaves every item inactive.
func Nav(table *routes.Table, activePath string) []NavItem {
	items := make([]NavItem, 0, table.Len())
	for i, r := range table.Routes() {
		items = append(items, NavItem{
			Index:  i + 1,
			Path:   r.Path,
			Label:  r.Label,
			Page:   r.Page,
			Active: r.Path == activePath,
		})
	}
	return items
}

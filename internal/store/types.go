// Package store provides the in-memory navigation history for navshell.
package store

import (
	"time"

	"github.com/grovetools/navshell/routes"
)

// EventKind classifies an entry in the event log.
type EventKind string

const (
	EventNavigation   EventKind = "navigation"
	EventConfigReload EventKind = "config_reload"
	EventPageError    EventKind = "page_error"
)

// Event is one entry in the shell's event log.
type Event struct {
	ID      string        `json:"id"`
	Kind    EventKind     `json:"kind"`
	Time    time.Time     `json:"time"`
	Source  string        `json:"source,omitempty"` // "http", "ws", "tui", "cli", "config"
	Path    string        `json:"path,omitempty"`
	Page    routes.PageID `json:"page,omitempty"`
	Matched bool          `json:"matched"`
	Message string        `json:"message,omitempty"`
}

// Stats summarises navigation activity since the store was created.
type Stats struct {
	Visits    map[routes.PageID]int `json:"visits"`
	Unmatched int                   `json:"unmatched"`
	Total     int                   `json:"total"`
	Failures  int                   `json:"failures"`
	Reloads   int                   `json:"reloads"`
	Last      *Event                `json:"last,omitempty"`
}

// UpdateType defines what kind of data changed.
type UpdateType string

const (
	UpdateNavigation   UpdateType = "navigation"
	UpdateConfigReload UpdateType = "config_reload"
	UpdatePageError    UpdateType = "page_error"
)

// Update is delivered to subscribers whenever an event is recorded.
type Update struct {
	Type    UpdateType `json:"type"`
	Source  string     `json:"source,omitempty"`
	Payload Event      `json:"payload"`
}

func updateTypeFor(kind EventKind) UpdateType {
	switch kind {
	case EventConfigReload:
		return UpdateConfigReload
	case EventPageError:
		return UpdatePageError
	default:
		return UpdateNavigation
	}
}

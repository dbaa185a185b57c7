// Package client talks to a running navshell server. It follows a transparent
// fallback pattern: when the server is reachable, calls go over HTTP;
// otherwise the route table is consulted in-process and server-only data
// (stats, events, streams) reports DAEMON_NOT_RUNNING.
package client

import (
	"context"

	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/routes"
)

// Client defines the interface for querying a navshell server.
type Client interface {
	// Routes returns the route table in declaration order.
	Routes(ctx context.Context) ([]routes.Route, error)

	// Resolve reports which page, if any, path maps to. It does not record a visit.
	Resolve(ctx context.Context, path string) (Resolution, error)

	// Stats returns navigation statistics since the server started.
	Stats(ctx context.Context) (store.Stats, error)

	// Events returns up to limit recent events, newest first.
	Events(ctx context.Context, limit int) ([]store.Event, error)

	// Stream subscribes to live store updates. The channel is closed when
	// ctx is cancelled or the connection is lost.
	Stream(ctx context.Context) (<-chan store.Update, error)

	// IsRunning returns true if the server is available and responding.
	IsRunning() bool

	// Close cleans up any resources used by the client.
	Close() error
}

// Resolution is the answer to a resolve query.
type Resolution struct {
	Path    string        `json:"path"`
	Matched bool          `json:"matched"`
	Page    routes.PageID `json:"page,omitempty"`
	Label   string        `json:"label,omitempty"`
}

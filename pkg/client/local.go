package client

import (
	"context"

	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/routes"
)

// LocalClient answers route questions in-process when no server is running.
type LocalClient struct {
	table *routes.Table
}

// NewLocalClient creates a client over table.
func NewLocalClient(table *routes.Table) *LocalClient {
	return &LocalClient{table: table}
}

func (c *LocalClient) Routes(ctx context.Context) ([]routes.Route, error) {
	return c.table.Routes(), nil
}

func (c *LocalClient) Resolve(ctx context.Context, path string) (Resolution, error) {
	out := Resolution{Path: path}
	if r, ok := c.table.Match(path); ok {
		out.Matched = true
		out.Page = r.Page
		out.Label = r.Label
	}
	return out, nil
}

func (c *LocalClient) Stats(ctx context.Context) (store.Stats, error) {
	return store.Stats{}, notRunning()
}

func (c *LocalClient) Events(ctx context.Context, limit int) ([]store.Event, error) {
	return nil, notRunning()
}

func (c *LocalClient) Stream(ctx context.Context) (<-chan store.Update, error) {
	return nil, notRunning()
}

func (c *LocalClient) IsRunning() bool { return false }
func (c *LocalClient) Close() error    { return nil }

func notRunning() error {
	return errors.New(errors.ErrCodeDaemonNotRunning, "navshell server is not running; start it with 'navshell serve'")
}

var _ Client = (*LocalClient)(nil)

package client

import (
	"context"
	"io"
	"net"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/internal/server"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/page"
	"github.com/grovetools/navshell/routes"
	"github.com/grovetools/navshell/shell"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (*httptest.Server, *shell.Shell, *store.Store) {
	t.Helper()
	cfg := config.Default()
	st := store.New(0)
	table := routes.Default()
	reg := page.Builtin(page.Deps{Table: table, Stats: st, Events: st, Config: config.NewHolder(cfg)})
	sh, err := shell.New(table, reg, shell.OptionsFromConfig(cfg, "test"), shell.WithRecorder(st))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	srv := server.New(sh, st, config.NewHolder(cfg), logrus.NewEntry(logger))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, sh, st
}

func TestRemoteClient(t *testing.T) {
	ts, sh, _ := startServer(t)
	c := NewRemoteClient(config.ServerConfig{Addr: strings.TrimPrefix(ts.URL, "http://")})
	defer c.Close()
	ctx := context.Background()

	assert.True(t, c.IsRunning())

	rs, err := c.Routes(ctx)
	require.NoError(t, err)
	assert.Equal(t, routes.Default().Routes(), rs)

	res, err := c.Resolve(ctx, "/knowledge")
	require.NoError(t, err)
	assert.Equal(t, Resolution{Path: "/knowledge", Matched: true, Page: routes.Knowledge, Label: "Knowledge"}, res)

	res, err = c.Resolve(ctx, "/knowledge?x=1")
	require.NoError(t, err)
	assert.False(t, res.Matched)

	sh.Visit(sh.Resolve("/settings"), "cli")
	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Visits[routes.Settings])

	events, err := c.Events(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "cli", events[0].Source)
}

func TestRemoteClientStream(t *testing.T) {
	ts, _, st := startServer(t)
	c := NewRemoteClient(config.ServerConfig{Addr: strings.TrimPrefix(ts.URL, "http://")})
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.Stream(ctx)
	require.NoError(t, err)

	// The subscription is registered before ": connected" is written, but
	// the client does not surface that comment, so retry the broadcast.
	var got store.Update
	require.Eventually(t, func() bool {
		st.BroadcastConfigReload("navshell.yml")
		select {
		case got = <-ch:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, store.UpdateConfigReload, got.Type)
}

func TestRemoteClientServerErrors(t *testing.T) {
	dir := t.TempDir()
	c := NewRemoteClient(config.ServerConfig{Socket: filepath.Join(dir, "missing.sock")})
	defer c.Close()

	assert.False(t, c.IsRunning())
	_, err := c.Routes(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeDaemonNotRunning))
}

func TestLocalClient(t *testing.T) {
	c := NewLocalClient(routes.Default())
	ctx := context.Background()

	res, err := c.Resolve(ctx, "/")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, routes.Dashboard, res.Page)

	res, err = c.Resolve(ctx, "/nonexistent")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Empty(t, res.Page)

	_, err = c.Stats(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeDaemonNotRunning))
	_, err = c.Stream(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeDaemonNotRunning))
	assert.False(t, c.IsRunning())
}

func TestNewFallsBackToLocal(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	_, ok := New(config.ServerConfig{Addr: addr}).(*LocalClient)
	assert.True(t, ok)

	ts, _, _ := startServer(t)
	c := New(config.ServerConfig{Addr: strings.TrimPrefix(ts.URL, "http://")})
	defer c.Close()
	_, ok = c.(*RemoteClient)
	assert.True(t, ok)
}

package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/internal/metrics"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/page"
	"github.com/grovetools/navshell/routes"
	"github.com/grovetools/navshell/shell"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	srv     *Server
	shell   *shell.Shell
	store   *store.Store
	holder  *config.Holder
	metrics *metrics.Metrics
	ts      *httptest.Server
}

func newFixture(t *testing.T, policy routes.NotFoundPolicy) *fixture {
	t.Helper()

	cfg := config.Default()
	cfg.Shell.NotFound = policy
	holder := config.NewHolder(cfg)
	st := store.New(0)
	m := metrics.New()

	table := routes.Default()
	reg := page.Builtin(page.Deps{Table: table, Stats: st, Events: st, Config: holder})
	sh, err := shell.New(table, reg, shell.OptionsFromConfig(cfg, "test"),
		shell.WithRecorder(st), shell.WithObserver(m))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv := New(sh, st, holder, logrus.NewEntry(logger), WithMetrics(m), WithVersion("test"))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &fixture{srv: srv, shell: sh, store: st, holder: holder, metrics: m, ts: ts}
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPageRoutes(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	for _, r := range routes.Default().Routes() {
		t.Run(r.Path, func(t *testing.T) {
			resp, body := get(t, f.ts.URL+r.Path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, string(r.Page), resp.Header.Get("X-Navshell-Page"))
			assert.Contains(t, body, `data-shell="layout"`)
			assert.Contains(t, body, `class="page page-`+string(r.Page)+`"`)

			// Only the matched page is mounted.
			for _, other := range routes.Default().Routes() {
				if other.Page != r.Page {
					assert.NotContains(t, body, `class="page page-`+string(other.Page)+`"`)
				}
			}
		})
	}
}

func TestUnmatchedPathRendersChrome(t *testing.T) {
	t.Run("empty policy", func(t *testing.T) {
		f := newFixture(t, routes.NotFoundEmpty)
		resp, body := get(t, f.ts.URL+"/nonexistent")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, `data-shell="layout"`)
		assert.NotContains(t, body, `class="page `)
	})

	t.Run("page policy", func(t *testing.T) {
		f := newFixture(t, routes.NotFoundPage)
		resp, body := get(t, f.ts.URL+"/nonexistent")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, `data-shell="layout"`)
		assert.Contains(t, body, `page-not-found`)
	})

	t.Run("trailing slash is not folded", func(t *testing.T) {
		f := newFixture(t, routes.NotFoundEmpty)
		resp, body := get(t, f.ts.URL+"/messages/")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.NotContains(t, body, `page-messages"`)
	})

	t.Run("case is not folded", func(t *testing.T) {
		f := newFixture(t, routes.NotFoundEmpty)
		resp, _ := get(t, f.ts.URL+"/Messages")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bare mount prefixes are not redirected", func(t *testing.T) {
		f := newFixture(t, routes.NotFoundEmpty)
		for _, path := range []string{"/api", "/static"} {
			resp, body := get(t, f.ts.URL+path)
			assert.Equal(t, path, resp.Request.URL.Path)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Contains(t, body, `data-shell="layout"`)
		}
	})
}

func TestPageMethodNotAllowed(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	resp, err := http.Post(f.ts.URL+"/messages", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
}

func TestHeadOmitsBody(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	resp, err := http.Head(f.ts.URL + "/settings")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
}

func TestVisitsAreRecorded(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	get(t, f.ts.URL+"/")
	get(t, f.ts.URL+"/messages")
	get(t, f.ts.URL+"/nowhere")

	stats := f.store.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Unmatched)
	assert.Equal(t, 1, stats.Visits[routes.Dashboard])
	assert.Equal(t, 1, stats.Visits[routes.Messages])
	require.NotNil(t, stats.Last)
	assert.Equal(t, "http", stats.Last.Source)
	assert.Equal(t, "/nowhere", stats.Last.Path)
}

func TestHealth(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)
	resp, body := get(t, f.ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestAPIRoutes(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	resp, body := get(t, f.ts.URL+"/api/routes")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got []routes.Route
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, routes.Default().Routes(), got)
}

func TestAPIResolve(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	tests := []struct {
		path    string
		matched bool
		page    routes.PageID
	}{
		{"/", true, routes.Dashboard},
		{"/knowledge", true, routes.Knowledge},
		{"/knowledge/", false, ""},
		{"/nonexistent", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, f.ts.URL+"/api/resolve?path="+tt.path)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var got resolveResponse
			require.NoError(t, json.Unmarshal([]byte(body), &got))
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.matched, got.Matched)
			assert.Equal(t, tt.page, got.Page)
		})
	}

	// Resolving does not count as a visit.
	assert.Zero(t, f.store.Stats().Total)

	resp, body := get(t, f.ts.URL+"/api/resolve")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "INVALID_INPUT")
}

func TestAPIConfig(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	resp, body := get(t, f.ts.URL+"/api/config")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got RunningConfig
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "test", got.Version)
	require.NotNil(t, got.Config)
	assert.Equal(t, config.DefaultTitle, got.Config.Shell.Title)
	assert.False(t, got.StartedAt.IsZero())
}

func TestAPIEventsAndStats(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)
	get(t, f.ts.URL+"/services")
	get(t, f.ts.URL+"/settings")

	resp, body := get(t, f.ts.URL+"/api/events?limit=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []store.Event
	require.NoError(t, json.Unmarshal([]byte(body), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "/settings", events[0].Path)

	resp, _ = get(t, f.ts.URL+"/api/events?limit=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = get(t, f.ts.URL+"/api/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats store.Stats
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.Equal(t, 2, stats.Total)
}

func TestUnknownAPIEndpoint(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)
	resp, body := get(t, f.ts.URL+"/api/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "ROUTE_NOT_FOUND")
	assert.NotContains(t, body, `data-shell="layout"`)
}

func TestStaticAssets(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)
	resp, body := get(t, f.ts.URL+"/static/shell.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)
	get(t, f.ts.URL+"/messages")
	get(t, f.ts.URL+"/nonexistent")

	resp, body := get(t, f.ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `navshell_shell_navigations_total{page="messages",source="http"} 1`)
	assert.Contains(t, body, `navshell_shell_unmatched_navigations_total{source="http"} 1`)
}

func TestStream(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.ts.URL+"/api/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)

	f.store.BroadcastConfigReload("navshell.yml")

	var data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(strings.TrimSpace(line), "data: ")
		}
	}

	var u store.Update
	require.NoError(t, json.Unmarshal([]byte(data), &u))
	assert.Equal(t, store.UpdateConfigReload, u.Type)
	assert.Equal(t, store.EventConfigReload, u.Payload.Kind)
}

func TestListenUnixSocket(t *testing.T) {
	dir := t.TempDir()
	socket := filepath.Join(dir, "run", "navshell.sock")

	l, err := Listen("", socket)
	require.NoError(t, err)
	l.Close()

	// A stale socket file is replaced.
	l, err = Listen("", socket)
	require.NoError(t, err)
	defer l.Close()
	assert.Equal(t, "unix", l.Addr().Network())
}

func TestServeAndShutdown(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	l, err := Listen("127.0.0.1:0", "")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- f.srv.Serve(l) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + l.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.srv.Shutdown(ctx))
	assert.NoError(t, <-done)
	http.DefaultClient.CloseIdleConnections()
}

func TestShutdownEndsOpenStream(t *testing.T) {
	f := newFixture(t, routes.NotFoundEmpty)

	l, err := Listen("127.0.0.1:0", "")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- f.srv.Serve(l) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + l.Addr().String() + "/api/stream")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, ": connected\n", line)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	require.NoError(t, f.srv.Shutdown(ctx))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.NoError(t, <-done)

	// The stream ends instead of hanging on the next event.
	_, err = io.ReadAll(reader)
	assert.NoError(t, err)
	http.DefaultClient.CloseIdleConnections()
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveNavigation(t *testing.T) {
	m := New()
	m.ObserveNavigation("dashboard", "http", true)
	m.ObserveNavigation("dashboard", "http", true)
	m.ObserveNavigation("", "tui", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.navigations.WithLabelValues("dashboard", "http")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unmatched.WithLabelValues("tui")))
}

func TestObserveFailure(t *testing.T) {
	m := New()
	m.ObserveFailure("services", "load")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pageFailures.WithLabelValues("services", "load")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveNavigation("messages", "ws", true)
	m.ObserveRender("html", 3*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `navshell_shell_navigations_total{page="messages",source="ws"} 1`)
	assert.Contains(t, body, "navshell_shell_render_duration_seconds_bucket")
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	m := New()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "404")))
}

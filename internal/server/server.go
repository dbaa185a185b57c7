// Package server serves the navigation shell over HTTP, over TCP or a Unix
// socket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/internal/metrics"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/layout"
	"github.com/grovetools/navshell/shell"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ConfigSource provides the running configuration.
type ConfigSource interface {
	Config() *config.Config
}

// Server wires the shell, the store and the API endpoints onto one mux.
type Server struct {
	logger    *logrus.Entry
	shell     *shell.Shell
	store     *store.Store
	config    ConfigSource
	metrics   *metrics.Metrics
	version   string
	startedAt time.Time

	upgrader websocket.Upgrader

	mu     sync.Mutex
	server *http.Server

	// done is closed by Shutdown so long-lived streams and websockets end.
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes m on /metrics and instruments every request.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithVersion sets the version reported by /api/config.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a new Server instance.
func New(sh *shell.Shell, st *store.Store, cfg ConfigSource, logger *logrus.Entry, opts ...Option) *Server {
	s := &Server{
		logger:    logger,
		shell:     sh,
		store:     st,
		config:    cfg,
		startedAt: time.Now(),
		done:      make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler builds the HTTP handler. Every path not claimed by /api/, /static/,
// /health or /metrics is rendered by the shell.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/routes", s.handleRoutes)
	mux.HandleFunc("/api/resolve", s.handleResolve)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/stream", s.handleStream)
	mux.HandleFunc("/api/ws", s.handleWebSocket)
	mux.HandleFunc("/api/", s.handleAPINotFound)
	// Bare prefixes are ordinary unmatched paths, not redirects.
	mux.HandleFunc("/api", s.handlePage)
	mux.HandleFunc("/static", s.handlePage)

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(layout.Static())))

	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	mux.HandleFunc("/", s.handlePage)

	var h http.Handler = mux
	if s.metrics != nil {
		h = s.metrics.Middleware(h)
	}
	return h
}

// Listen opens the listener described by the server config. A socket path
// takes precedence over addr. A stale socket file is removed and the new one
// is restricted to the current user.
func Listen(addr, socketPath string) (net.Listener, error) {
	if socketPath == "" {
		return net.Listen("tcp", addr)
	}

	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0600); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}
	return listener, nil
}

// Serve blocks until the server stops. A graceful Shutdown returns nil.
func (s *Server) Serve(listener net.Listener) error {
	srv := &http.Server{
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	s.logger.WithField("addr", listener.Addr().String()).Info("Shell listening")
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown ends open event streams and websockets, then gracefully stops
// the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	s.closeOnce.Do(func() { close(s.done) })
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

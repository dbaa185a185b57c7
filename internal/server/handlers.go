package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/routes"
)

// handlePage renders the shell for the request path. Status is 200 for a
// declared route, 404 for an undeclared one and 500 when the page failed;
// the chrome is rendered in every case.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	res := s.shell.Resolve(r.URL.Path)
	s.shell.Visit(res, "http")

	var buf bytes.Buffer
	result, err := s.shell.RenderHTML(r.Context(), &buf, res)
	if err != nil {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("Failed to render layout")
		http.Error(w, "failed to render layout", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Navshell-Page", string(result.Page))
	w.WriteHeader(result.Status())
	if r.Method == http.MethodHead {
		return
	}
	w.Write(buf.Bytes())
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.shell.Table().Routes())
}

// resolveResponse is the /api/resolve payload.
type resolveResponse struct {
	Path    string        `json:"path"`
	Matched bool          `json:"matched"`
	Page    routes.PageID `json:"page,omitempty"`
	Label   string        `json:"label,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("path") {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "missing 'path' query parameter"))
		return
	}
	res := s.shell.Resolve(r.URL.Query().Get("path"))
	writeJSON(w, http.StatusOK, resolveResponse{
		Path:    res.Path,
		Matched: res.Matched,
		Page:    res.PageID(),
		Label:   res.Route.Label,
	})
}

// RunningConfig is the /api/config payload.
type RunningConfig struct {
	Version   string         `json:"version"`
	StartedAt time.Time      `json:"started_at"`
	Sources   []string       `json:"sources"`
	Config    *config.Config `json:"config"`
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.config.Config()
	if cfg == nil {
		http.Error(w, "config not initialized", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, RunningConfig{
		Version:   s.version,
		StartedAt: s.startedAt,
		Sources:   cfg.Sources(),
		Config:    cfg,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Stats())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.store.Recent(limit))
}

func (s *Server) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeRouteNotFound, "unknown API endpoint "+r.URL.Path))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *errors.ShellError) {
	writeJSON(w, status, err)
}

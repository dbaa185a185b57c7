// Package shell maps a location path to exactly one page and renders it
// inside the layout chrome.
//
// The route table is matched exactly: no parameters, wildcards, trailing
// slash folding or case folding. For an undeclared path the chrome is still
// rendered; what goes in the content slot depends on the not-found policy.
// Under the default "empty" policy nothing is mounted, under "page" the
// NotFound page is mounted.
package shell

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/layout"
	"github.com/grovetools/navshell/page"
	"github.com/grovetools/navshell/pkg/profiling"
	"github.com/grovetools/navshell/routes"
	"github.com/sirupsen/logrus"
)

// Options are the settings that may change at runtime (config reload).
type Options struct {
	Title    string
	Version  string
	NotFound routes.NotFoundPolicy
}

// OptionsFromConfig extracts shell options from a loaded config.
func OptionsFromConfig(cfg *config.Config, version string) Options {
	return Options{
		Title:    cfg.Shell.Title,
		Version:  version,
		NotFound: cfg.Shell.NotFound.Normalize(),
	}
}

// Recorder receives every navigation and caught page failure.
type Recorder interface {
	Record(e store.Event) store.Event
}

// Observer receives instrumentation callbacks.
type Observer interface {
	ObserveNavigation(page, source string, matched bool)
	ObserveFailure(page, stage string)
	ObserveRender(surface string, d time.Duration)
}

// Shell owns the route table, the page registry and both layout renderers.
type Shell struct {
	table    *routes.Table
	pages    *page.Registry
	html     *layout.HTML
	term     *layout.Terminal
	opts     atomic.Pointer[Options]
	recorder Recorder
	observer Observer
	logger   *logrus.Entry
}

// Option configures a Shell.
type Option func(*Shell)

func WithRecorder(r Recorder) Option { return func(s *Shell) { s.recorder = r } }
func WithObserver(o Observer) Option { return func(s *Shell) { s.observer = o } }
func WithLogger(l *logrus.Entry) Option {
	return func(s *Shell) { s.logger = l }
}

// WithTerminal overrides the terminal layout (theme and icons).
func WithTerminal(t *layout.Terminal) Option { return func(s *Shell) { s.term = t } }

// New builds a shell. Every route in table must have a registered page.
func New(table *routes.Table, pages *page.Registry, opts Options, options ...Option) (*Shell, error) {
	if err := pages.Covers(table); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "page registry does not cover route table")
	}
	html, err := layout.NewHTML()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to parse layout templates")
	}

	s := &Shell{
		table: table,
		pages: pages,
		html:  html,
	}
	for _, o := range options {
		o(s)
	}
	if s.term == nil {
		s.term = layout.NewTerminal()
	}
	if s.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.logger = logrus.NewEntry(l)
	}
	s.SetOptions(opts)
	return s, nil
}

// Table returns the route table.
func (s *Shell) Table() *routes.Table { return s.table }

// Options returns the current options.
func (s *Shell) Options() Options { return *s.opts.Load() }

// SetOptions replaces the options atomically. Renders in flight keep the
// options they started with.
func (s *Shell) SetOptions(o Options) {
	o.NotFound = o.NotFound.Normalize()
	if o.Title == "" {
		o.Title = config.DefaultTitle
	}
	s.opts.Store(&o)
}

// Resolution is the outcome of matching a path.
type Resolution struct {
	Path    string
	Route   routes.Route
	Matched bool
	// Page is the component to mount; nil when nothing is mounted.
	Page page.Page
}

// PageID returns the mounted page id, or "" when nothing is mounted.
func (r Resolution) PageID() routes.PageID {
	if r.Page == nil {
		return ""
	}
	return r.Page.Name()
}

// Resolve matches path against the table and picks the page to mount.
func (s *Shell) Resolve(path string) Resolution {
	res := Resolution{Path: path}
	if route, ok := s.table.Match(path); ok {
		res.Route = route
		res.Matched = true
		res.Page, _ = s.pages.Get(route.Page)
		return res
	}
	if s.Options().NotFound == routes.NotFoundPage {
		res.Page = page.NewNotFound(path, s.table)
	}
	return res
}

// Visit records a navigation to res from source ("http", "ws", "tui", "cli").
func (s *Shell) Visit(res Resolution, source string) {
	if s.recorder != nil {
		s.recorder.Record(store.Event{
			Kind:    store.EventNavigation,
			Source:  source,
			Path:    res.Path,
			Page:    res.Route.Page,
			Matched: res.Matched,
		})
	}
	if s.observer != nil {
		s.observer.ObserveNavigation(string(res.Route.Page), source, res.Matched)
	}
	if !res.Matched {
		s.logger.WithFields(logrus.Fields{"path": res.Path, "source": source}).Debug("No route for path")
	}
}

// Result describes one render.
type Result struct {
	Path    string        `json:"path"`
	Matched bool          `json:"matched"`
	Page    routes.PageID `json:"page,omitempty"`
	Title   string        `json:"title,omitempty"`
	// Failed holds the error caught by the boundary, if any.
	Failed error `json:"-"`
}

// Status maps the result onto an HTTP status code.
func (r Result) Status() int {
	switch {
	case r.Failed != nil:
		return http.StatusInternalServerError
	case !r.Matched:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

// RenderHTML writes the full document for path. The returned error is only
// set when the document itself could not be written; page failures are
// reported through Result.Failed and rendered as an error panel.
func (s *Shell) RenderHTML(ctx context.Context, w io.Writer, res Resolution) (Result, error) {
	start := time.Now()
	m := s.mount(ctx, res, surfaceHTML, 0)
	v := s.view(res, m)
	layoutTimer := profiling.Time(ctx, profiling.PhaseLayout)
	err := s.html.Render(w, v)
	layoutTimer.Stop()
	s.observeRender("html", start)
	if err != nil {
		return m.result, errors.Wrap(err, errors.ErrCodePageRenderFailed, "failed to render layout")
	}
	return m.result, nil
}

// RenderFragment renders only the content slot for path.
func (s *Shell) RenderFragment(ctx context.Context, res Resolution) (Result, template.HTML, error) {
	start := time.Now()
	m := s.mount(ctx, res, surfaceHTML, 0)
	frag, err := s.html.Fragment(s.view(res, m))
	s.observeRender("fragment", start)
	if err != nil {
		return m.result, "", errors.Wrap(err, errors.ErrCodePageRenderFailed, "failed to render content")
	}
	return m.result, frag, nil
}

// RenderText renders the terminal layout for path at the given size.
func (s *Shell) RenderText(ctx context.Context, res Resolution, width, height int) (Result, string) {
	start := time.Now()
	m := s.mount(ctx, res, surfaceText, layout.ContentWidth(width))
	layoutTimer := profiling.Time(ctx, profiling.PhaseLayout)
	out := s.term.Render(s.view(res, m), width, height)
	layoutTimer.Stop()
	s.observeRender("text", start)
	return m.result, out
}

func (s *Shell) view(res Resolution, m mounted) layout.View {
	opts := s.Options()
	v := layout.View{
		Title:     opts.Title,
		Version:   opts.Version,
		Path:      res.Path,
		Matched:   res.Matched,
		PageTitle: m.result.Title,
		Nav:       layout.Nav(s.table, res.Path),
		Content:   m.html,
		Text:      m.text,
	}
	if failed := m.result.Failed; failed != nil {
		msg := failed.Error()
		if se, ok := errors.As(failed); ok {
			msg = se.Message
			if se.Cause != nil {
				msg += ": " + se.Cause.Error()
			}
		}
		v.Error = &layout.Panel{
			Page:    string(res.PageID()),
			Code:    string(errors.GetCode(failed)),
			Message: msg,
		}
	}
	return v
}

func (s *Shell) observeRender(surface string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveRender(surface, time.Since(start))
	}
}

func (s *Shell) String() string {
	return fmt.Sprintf("shell(%d routes, not_found=%s)", s.table.Len(), s.Options().NotFound)
}

package shell

import (
	"context"
	"fmt"
	"html/template"

	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/page"
	"github.com/grovetools/navshell/pkg/profiling"
	"github.com/sirupsen/logrus"
)

type surface int

const (
	surfaceHTML surface = iota
	surfaceText
)

type mounted struct {
	result Result
	html   template.HTML
	text   string
}

// mount loads and renders the resolved page inside an error boundary. A page
// that returns an error or panics yields an empty content slot and a
// Result.Failed; it never aborts the layout.
func (s *Shell) mount(ctx context.Context, res Resolution, surf surface, width int) mounted {
	m := mounted{result: Result{Path: res.Path, Matched: res.Matched}}
	if res.Page == nil {
		return m
	}
	p := res.Page
	m.result.Page = p.Name()
	m.result.Title = p.Title()

	loading := profiling.Time(ctx, profiling.PhaseLoad)
	data, err := guard(func() (any, error) { return p.Load(ctx) })
	loading.Stop()
	if err != nil {
		m.result.Failed = errors.PageLoadFailed(string(p.Name()), err)
		s.fail(res, p, "load", m.result.Failed)
		return m
	}

	defer profiling.Time(ctx, profiling.PhaseRender).Stop()
	switch surf {
	case surfaceText:
		out, err := guard(func() (any, error) { return p.Text(data, width) })
		if err != nil {
			m.result.Failed = errors.PageRenderFailed(string(p.Name()), err)
			s.fail(res, p, "render", m.result.Failed)
			return m
		}
		m.text = out.(string)
	default:
		out, err := guard(func() (any, error) { return p.HTML(data) })
		if err != nil {
			m.result.Failed = errors.PageRenderFailed(string(p.Name()), err)
			s.fail(res, p, "render", m.result.Failed)
			return m
		}
		m.html = out.(template.HTML)
	}
	return m
}

// guard converts a panic in fn into an error.
func guard(fn func() (any, error)) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return fn()
}

func (s *Shell) fail(res Resolution, p page.Page, stage string, err error) {
	s.logger.WithFields(logrus.Fields{
		"path":  res.Path,
		"page":  p.Name(),
		"stage": stage,
	}).WithError(err).Warn("Page failed")

	if s.recorder != nil {
		s.recorder.Record(store.Event{
			Kind:    store.EventPageError,
			Source:  "shell",
			Path:    res.Path,
			Page:    p.Name(),
			Matched: res.Matched,
			Message: stage + ": " + err.Error(),
		})
	}
	if s.observer != nil {
		s.observer.ObserveFailure(string(p.Name()), stage)
	}
}

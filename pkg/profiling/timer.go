package profiling

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Phase names one step of turning a path into output.
type Phase string

const (
	PhaseLoad   Phase = "load"
	PhaseRender Phase = "render"
	PhaseLayout Phase = "layout"
)

// Stopper ends a timed step.
type Stopper interface {
	Stop()
}

type timing struct {
	name     string
	duration time.Duration
}

// Trace times the phases of one path rendered on one surface.
type Trace struct {
	surface string
	path    string
	start   time.Time

	mu     sync.Mutex
	total  time.Duration
	phases []timing
}

// Stop ends the trace. Phases still running are not counted.
func (t *Trace) Stop() {
	t.mu.Lock()
	t.total = time.Since(t.start)
	t.mu.Unlock()
}

func (t *Trace) label() string {
	return fmt.Sprintf("render %s [%s]", t.path, t.surface)
}

func (t *Trace) add(name string, d time.Duration) {
	t.mu.Lock()
	t.phases = append(t.phases, timing{name: name, duration: d})
	t.mu.Unlock()
}

type phaseStopper struct {
	trace *Trace
	phase Phase
	start time.Time
}

func (s phaseStopper) Stop() {
	s.trace.add(string(s.phase), time.Since(s.start))
}

type stepStopper struct {
	name  string
	start time.Time
}

func (s stepStopper) Stop() {
	recorder.addStep(s.name, time.Since(s.start))
}

type noopStopper struct{}

func (noopStopper) Stop() {}

type traceKey struct{}

// session collects steps and traces for one CLI invocation.
type session struct {
	mu      sync.Mutex
	enabled bool
	start   time.Time
	steps   []timing
	traces  []*Trace
}

var recorder = &session{}

// Enable turns on timing for this process. Until then every call is a no-op.
func Enable() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.enabled {
		return
	}
	recorder.enabled = true
	recorder.start = time.Now()
}

func enabled() bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.enabled
}

func (s *session) addStep(name string, d time.Duration) {
	s.mu.Lock()
	s.steps = append(s.steps, timing{name: name, duration: d})
	s.mu.Unlock()
}

// Step times a top-level step that is not part of a render, such as loading
// config.
func Step(name string) Stopper {
	if !enabled() {
		return noopStopper{}
	}
	return stepStopper{name: name, start: time.Now()}
}

// StartTrace begins timing a render of path on surface and returns a context
// that carries it to Time.
func StartTrace(ctx context.Context, surface, path string) (context.Context, Stopper) {
	if !enabled() {
		return ctx, noopStopper{}
	}
	t := &Trace{surface: surface, path: path, start: time.Now()}
	recorder.mu.Lock()
	recorder.traces = append(recorder.traces, t)
	recorder.mu.Unlock()
	return context.WithValue(ctx, traceKey{}, t), t
}

// Time starts timing phase for the trace carried by ctx. Without a trace it
// returns a no-op, so servers rendering untraced requests pay nothing.
func Time(ctx context.Context, phase Phase) Stopper {
	t, ok := ctx.Value(traceKey{}).(*Trace)
	if !ok {
		return noopStopper{}
	}
	return phaseStopper{trace: t, phase: phase, start: time.Now()}
}

// Summarize writes each step, then each render with its phases and their
// share of that render.
func Summarize(w io.Writer) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if !recorder.enabled {
		return
	}

	rows := [][2]string{}
	for _, s := range recorder.steps {
		rows = append(rows, [2]string{s.name, round(s.duration)})
	}
	for _, t := range recorder.traces {
		t.mu.Lock()
		total := t.total
		if total == 0 {
			total = time.Since(t.start)
		}
		rows = append(rows, [2]string{t.label(), round(total)})
		for _, p := range t.phases {
			share := float64(p.duration) / float64(total) * 100
			rows = append(rows, [2]string{"  " + p.name, fmt.Sprintf("%s  %4.1f%%", round(p.duration), share)})
		}
		t.mu.Unlock()
	}
	rows = append(rows, [2]string{"total", round(time.Since(recorder.start))})

	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	fmt.Fprintln(w, "\n--- navshell timing ---")
	for _, r := range rows {
		fmt.Fprintf(w, "%s%s  %s\n", r[0], strings.Repeat(" ", width-len(r[0])), r[1])
	}
}

func round(d time.Duration) string {
	return d.Round(100 * time.Microsecond).String()
}

// reset clears recorded timings; tests share the process-wide recorder.
func reset() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.enabled = false
	recorder.steps = nil
	recorder.traces = nil
}

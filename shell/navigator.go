package shell

import "sync"

// Navigator holds a single current-route pointer for one client (a terminal
// session or a websocket connection).
type Navigator struct {
	shell  *Shell
	source string

	mu      sync.Mutex
	current Resolution
	started bool
}

// Transition is the outcome of a navigation.
type Transition struct {
	From Resolution
	To   Resolution
}

// Changed reports whether the mounted page differs after the transition.
func (t Transition) Changed() bool {
	return t.From.Path != t.To.Path || t.From.PageID() != t.To.PageID()
}

// NewNavigator creates a navigator whose navigations are recorded with source.
func (s *Shell) NewNavigator(source string) *Navigator {
	return &Navigator{shell: s, source: source}
}

// Navigate resolves path, makes it current and records the visit.
func (n *Navigator) Navigate(path string) Transition {
	res := n.shell.Resolve(path)

	n.mu.Lock()
	from := n.current
	n.current = res
	n.started = true
	n.mu.Unlock()

	n.shell.Visit(res, n.source)
	return Transition{From: from, To: res}
}

// Current returns the active resolution. ok is false before the first navigation.
func (n *Navigator) Current() (res Resolution, ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.started
}

// Refresh re-resolves the current path, picking up option changes such as a
// new not-found policy, without recording a visit.
func (n *Navigator) Refresh() Resolution {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started {
		n.current = n.shell.Resolve(n.current.Path)
	}
	return n.current
}

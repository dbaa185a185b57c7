package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grovetools/navshell/routes"
)

// DefaultCapacity bounds the event log when New is given zero.
const DefaultCapacity = 200

// subscriberBuffer is the per-subscriber channel depth.
const subscriberBuffer = 100

// Store is the in-memory navigation log. It is safe for concurrent use and
// fans recorded events out to subscribers.
type Store struct {
	mu          sync.RWMutex
	events      []Event // ring, oldest first once full
	capacity    int
	stats       Stats
	subscribers map[chan Update]struct{}
	now         func() time.Time
}

// New creates a store that retains at most capacity events.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		events:      make([]Event, 0, capacity),
		capacity:    capacity,
		stats:       Stats{Visits: make(map[routes.PageID]int)},
		subscribers: make(map[chan Update]struct{}),
		now:         time.Now,
	}
}

// Record stamps e with an id and time (when unset), appends it, updates the
// counters and notifies subscribers. The stored event is returned.
func (s *Store) Record(e Event) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = s.now()
	}
	if e.Kind == "" {
		e.Kind = EventNavigation
	}

	if len(s.events) == s.capacity {
		copy(s.events, s.events[1:])
		s.events = s.events[:len(s.events)-1]
	}
	s.events = append(s.events, e)

	switch e.Kind {
	case EventNavigation:
		s.stats.Total++
		if e.Matched {
			s.stats.Visits[e.Page]++
		} else {
			s.stats.Unmatched++
		}
		last := e
		s.stats.Last = &last
	case EventPageError:
		s.stats.Failures++
	case EventConfigReload:
		s.stats.Reloads++
	}

	s.broadcast(Update{Type: updateTypeFor(e.Kind), Source: e.Source, Payload: e})
	return e
}

// BroadcastConfigReload records a config reload for the given files.
func (s *Store) BroadcastConfigReload(files ...string) Event {
	return s.Record(Event{
		Kind:    EventConfigReload,
		Source:  "config",
		Message: strings.Join(files, ", "),
	})
}

// Recent returns up to n events, newest first. n <= 0 returns all of them.
func (s *Store) Recent(n int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.events) {
		n = len(s.events)
	}
	out := make([]Event, 0, n)
	for i := len(s.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.events[i])
	}
	return out
}

// Stats returns a copy of the counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.stats
	out.Visits = make(map[routes.PageID]int, len(s.stats.Visits))
	for k, v := range s.stats.Visits {
		out.Visits[k] = v
	}
	if s.stats.Last != nil {
		last := *s.stats.Last
		out.Last = &last
	}
	return out
}

// Subscribe creates a new subscription channel for store updates.
func (s *Store) Subscribe() chan Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Update, subscriberBuffer)
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; !ok {
		return
	}
	delete(s.subscribers, ch)
	close(ch)
}

// broadcast must be called with s.mu held.
func (s *Store) broadcast(u Update) {
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
			// slow subscribers miss updates rather than stall navigation
		}
	}
}

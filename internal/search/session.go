// Package search owns the per-query lifecycle of one search session:
// submit, supersede, deliver, and selection state over the result list.
package search

import (
	"context"
	"strings"

	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
	"github.com/quakeboy/qmd-search-obsidian/internal/eventbus"
)

// State is the invocation state of a session
type State int

const (
	StateIdle State = iota
	StateSearching
)

// Session tracks one open search modal. At most one invocation is in flight;
// submitting again supersedes the previous one. Results keep the order qmd
// returned them in and are never re-sorted here.
type Session struct {
	bus  eventbus.EventBus
	mode domain.Mode

	query      string
	state      State
	results    []domain.SearchResult
	selected   int
	generation uint64
	cancel     context.CancelFunc
}

// NewSession creates an idle session for the given mode
func NewSession(mode domain.Mode, bus eventbus.EventBus) *Session {
	return &Session{
		bus:      bus,
		mode:     mode,
		selected: -1,
	}
}

func (s *Session) Mode() domain.Mode              { return s.mode }
func (s *Session) Query() string                  { return s.query }
func (s *Session) State() State                   { return s.state }
func (s *Session) Results() []domain.SearchResult { return s.results }
func (s *Session) SelectedIndex() int             { return s.selected }
func (s *Session) Generation() uint64             { return s.generation }

// Submit starts a new search. A whitespace-only query is a no-op. Any
// in-flight invocation is cancelled first; the returned context belongs to
// the new invocation and carries its generation.
func (s *Session) Submit(query string) (context.Context, uint64, bool) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, false
	}

	if s.cancel != nil {
		s.cancel()
	}

	s.generation++
	s.query = query
	s.state = StateSearching
	s.results = nil
	s.selected = -1

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	if s.bus != nil {
		s.bus.Publish(eventbus.SearchStartedEvent{
			Query:      query,
			Mode:       s.mode,
			Generation: s.generation,
		})
	}

	return ctx, s.generation, true
}

// Deliver installs results from an invocation. Output from a superseded
// generation is discarded entirely; the return value reports whether the
// delivery was current.
func (s *Session) Deliver(generation uint64, results []domain.SearchResult) bool {
	if generation != s.generation {
		return false
	}

	s.state = StateIdle
	s.results = results
	s.selected = -1
	s.cancel = nil

	if s.bus != nil {
		s.bus.Publish(eventbus.SearchCompletedEvent{
			Query:      s.query,
			Generation: generation,
			Results:    results,
		})
	}

	return true
}

// Fail records a failed invocation. Stale failures are discarded the same
// way stale results are.
func (s *Session) Fail(generation uint64, message string) bool {
	if generation != s.generation {
		return false
	}

	s.state = StateIdle
	s.results = nil
	s.selected = -1
	s.cancel = nil

	if s.bus != nil {
		s.bus.Publish(eventbus.SearchFailedEvent{
			Query:      s.query,
			Generation: generation,
			Message:    message,
		})
	}

	return true
}

// MoveSelection shifts the selection by delta, wrapping circularly at both
// ends. With no results it is a no-op and the selection stays at -1.
func (s *Session) MoveSelection(delta int) {
	n := len(s.results)
	if n == 0 || delta == 0 {
		return
	}

	if s.selected < 0 {
		// Focus leaves the input field: land on the first or last row
		if delta >= 0 {
			s.selected = (delta - 1) % n
		} else {
			s.selected = (n + delta%n) % n
		}
		return
	}

	s.selected = ((s.selected+delta)%n + n) % n
}

// ClearSelection returns focus to the input field
func (s *Session) ClearSelection() {
	s.selected = -1
}

// Selected returns the currently selected result, if any
func (s *Session) Selected() (domain.SearchResult, bool) {
	if s.selected < 0 || s.selected >= len(s.results) {
		return domain.SearchResult{}, false
	}
	return s.results[s.selected], true
}

// Close cancels any in-flight invocation and bumps the generation so late
// output can never land
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.state = StateIdle
}

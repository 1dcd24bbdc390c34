package app

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"tripcast/internal/place"
)

// DefaultDebounce is how long input must pause before a suggestion fetch
// fires.
const DefaultDebounce = 260 * time.Millisecond

// NoticeSelectLocation is surfaced when a search runs without a resolved
// location.
const NoticeSelectLocation = "Please select a location first."

// State is the mutable interaction state of one lookup session.
type State struct {
	Location    string
	Suggestions []string
	Coords      *place.Coordinates
	Rain        string
	Temperature string
	Humidity    string
	Advisory    string
	Notice      string
}

// Session drives the interactive flow: debounced suggestion fetches on every
// input change, an explicit weather search on demand. Each input change
// bumps a generation counter; a suggestion response from a superseded
// generation is dropped instead of overwriting newer state.
type Session struct {
	app *App
	deb *Debouncer
	gen atomic.Uint64

	mu    sync.Mutex
	state State
}

func NewSession(a *App, debounce time.Duration) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Session{
		app: a,
		deb: NewDebouncer(debounce),
	}
}

// SetInput records the current input text and schedules a suggestion fetch
// for once typing pauses. Earlier pending fetches are canceled.
func (s *Session) SetInput(ctx context.Context, text string) {
	s.mu.Lock()
	s.state.Location = text
	s.mu.Unlock()

	gen := s.gen.Add(1)
	s.deb.Schedule(func() {
		s.fetchSuggestions(ctx, text, gen)
	})
}

func (s *Session) fetchSuggestions(ctx context.Context, text string, gen uint64) {
	res, err := s.app.Suggest(ctx, text)
	if gen != s.gen.Load() {
		// A newer input superseded this fetch while it was in flight.
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("suggest: %v", err)
		s.state.Suggestions = nil
		return
	}
	s.state.Suggestions = res.Labels
	if res.Coords != nil {
		s.state.Coords = res.Coords
	}
}

// Select accepts one of the offered suggestions: the label becomes the
// location text, the list is cleared, and any pending or in-flight fetch is
// discarded.
func (s *Session) Select(label string) {
	s.gen.Add(1)
	s.deb.Cancel()

	s.mu.Lock()
	s.state.Location = label
	s.state.Suggestions = nil
	s.mu.Unlock()
}

// Search runs the weather and advisory fetches for the selected location.
// Without a resolved coordinate pair it records a notice and makes no
// network call.
func (s *Session) Search(ctx context.Context) {
	s.mu.Lock()
	coords := s.state.Coords
	label := s.state.Location
	s.mu.Unlock()

	rep, err := s.app.Lookup(ctx, coords, label)
	if err != nil {
		s.mu.Lock()
		s.state.Notice = NoticeSelectLocation
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notice = ""
	if rep.HasWeather {
		s.state.Rain = rep.Summary.Rain
		s.state.Temperature = rep.Summary.Temperature
		s.state.Humidity = rep.Summary.Humidity
	}
	s.state.Advisory = rep.Advisory
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Suggestions = append([]string(nil), s.state.Suggestions...)
	if s.state.Coords != nil {
		c := *s.state.Coords
		st.Coords = &c
	}
	return st
}

// Close cancels any pending suggestion fetch.
func (s *Session) Close() {
	s.gen.Add(1)
	s.deb.Cancel()
}

package geocode

import (
	"context"
	"sync"
)

// Sequencer enforces a latest-request-wins discipline for autocomplete
// lookups. Each typing session has its own sequence, so concurrent
// lookups from different callers never supersede each other: a response
// is only stale when a newer lookup started in the SAME session while
// it was in flight. Stale responses come back as (nil, false).
type Sequencer struct {
	geocoder Geocoder

	mu     sync.Mutex
	latest map[string]uint64
}

// NewSequencer wraps a geocoder with per-session stale-response
// suppression
func NewSequencer(geocoder Geocoder) *Sequencer {
	return &Sequencer{
		geocoder: geocoder,
		latest:   map[string]uint64{},
	}
}

// Autocomplete runs the lookup and reports whether its result is still
// the freshest one for the session
func (s *Sequencer) Autocomplete(ctx context.Context, session, partial string) ([]Suggestion, bool) {
	s.mu.Lock()
	s.latest[session]++
	seq := s.latest[session]
	s.mu.Unlock()

	suggestions, err := s.geocoder.Autocomplete(ctx, partial)
	if err != nil {
		suggestions = []Suggestion{}
	}

	s.mu.Lock()
	fresh := seq == s.latest[session]
	s.mu.Unlock()

	if !fresh {
		return nil, false
	}
	return suggestions, true
}

// Package snapshot holds the published view of live matches served to readers.
//
// A Snapshot is never mutated after it is published. Writers build a new one and
// swap the reference under the store lock, so a reader always sees matches,
// details and timestamps that existed together at a single point in time.
package snapshot

import (
	"sync"
	"time"

	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// Snapshot is the complete published view of the live data
type Snapshot struct {
	Matches        []models.LiveMatch
	Details        map[string]models.Details // keyed by LiveMatch.DetailRef
	LastUpdated    time.Time                 // last details publish, zero if never
	MatchesUpdated time.Time                 // last match list publish, zero if never
}

// HasLastUpdated reports whether details were ever published
func (s Snapshot) HasLastUpdated() bool {
	return !s.LastUpdated.IsZero()
}

// Store holds exactly one Snapshot and swaps it atomically
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore creates a store holding the empty startup snapshot
func NewStore() *Store {
	return &Store{
		current: &Snapshot{
			Matches: []models.LiveMatch{},
			Details: map[string]models.Details{},
		},
	}
}

// Read returns the currently published snapshot.
// The returned value shares its slice and map with the store; treat it as read-only.
func (s *Store) Read() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.current
}

// PublishMatches replaces the match list. Details and LastUpdated are kept.
func (s *Store) PublishMatches(matches []models.LiveMatch, at time.Time) {
	next := make([]models.LiveMatch, len(matches))
	copy(next, matches)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Snapshot{
		Matches:        next,
		Details:        s.current.Details,
		LastUpdated:    s.current.LastUpdated,
		MatchesUpdated: at,
	}
}

// PublishDetails replaces the details map and LastUpdated together.
// This is a wholesale replace: refs missing from details are dropped.
func (s *Store) PublishDetails(details map[string]models.Details, lastUpdated time.Time) {
	next := make(map[string]models.Details, len(details))
	for ref, d := range details {
		next[ref] = d
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Snapshot{
		Matches:        s.current.Matches,
		Details:        next,
		LastUpdated:    lastUpdated,
		MatchesUpdated: s.current.MatchesUpdated,
	}
}

// DetailsFor looks up the published details for one match
func (s *Store) DetailsFor(ref string) (models.Details, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.current.Details[ref]
	return d, ok
}

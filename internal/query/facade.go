package query

import (
	"errors"
	"time"

	"github.com/fortuna/services/live-scores-service/internal/snapshot"
	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// ErrNotFound is returned when no details are cached for a reference.
// It is an expected cache miss, not a failure of the service.
var ErrNotFound = errors.New("no cached details for this match")

// Facade is the read-only view of the snapshot served to the HTTP layer.
// It never calls the scrape provider and never waits on a refresh.
type Facade struct {
	store *snapshot.Store
}

// New creates a facade over store
func New(store *snapshot.Store) *Facade {
	return &Facade{store: store}
}

// LiveMatches returns the published matches and the last details refresh time.
// ok is false while no refresh has completed yet.
func (f *Facade) LiveMatches() (matches []models.LiveMatch, lastUpdated time.Time, ok bool) {
	snap := f.store.Read()
	return snap.Matches, snap.LastUpdated, snap.HasLastUpdated()
}

// LiveView is the response shape of the live matches endpoint
type LiveView struct {
	LastUpdated    *time.Time         `json:"last_updated"`
	MatchesUpdated *time.Time         `json:"matches_updated"`
	Matches        []models.LiveMatch `json:"matches"`
}

// Live returns matches and both timestamps from one snapshot read
func (f *Facade) Live() LiveView {
	snap := f.store.Read()
	return LiveView{
		LastUpdated:    optionalTime(snap.LastUpdated),
		MatchesUpdated: optionalTime(snap.MatchesUpdated),
		Matches:        snap.Matches,
	}
}

// MatchDetails returns the cached details for ref or ErrNotFound
func (f *Facade) MatchDetails(ref string) (models.Details, error) {
	d, ok := f.store.DetailsFor(ref)
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// Status summarizes the published snapshot
type Status struct {
	Matches        int        `json:"matches"`
	Details        int        `json:"details"`
	LastUpdated    *time.Time `json:"last_updated"`
	MatchesUpdated *time.Time `json:"matches_updated"`
}

// Status returns counts and timestamps of the published snapshot
func (f *Facade) Status() Status {
	snap := f.store.Read()
	return Status{
		Matches:        len(snap.Matches),
		Details:        len(snap.Details),
		LastUpdated:    optionalTime(snap.LastUpdated),
		MatchesUpdated: optionalTime(snap.MatchesUpdated),
	}
}

// optionalTime maps the zero time to nil so it encodes as JSON null
func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

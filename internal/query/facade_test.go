package query_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fortuna/services/live-scores-service/internal/query"
	"github.com/fortuna/services/live-scores-service/internal/snapshot"
	"github.com/fortuna/services/live-scores-service/pkg/models"
)

func TestLiveMatches_BeforeFirstRefresh(t *testing.T) {
	f := query.New(snapshot.NewStore())

	matches, lastUpdated, ok := f.LiveMatches()
	if ok {
		t.Errorf("expected lastUpdated to be absent, got %v", lastUpdated)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}

	view := f.Live()
	if view.LastUpdated != nil || view.MatchesUpdated != nil {
		t.Errorf("expected nil timestamps, got %+v", view)
	}
	if view.Matches == nil {
		t.Error("expected empty, non-nil match list so it encodes as []")
	}
}

func TestLiveMatches_ReturnsPublishedSnapshot(t *testing.T) {
	store := snapshot.NewStore()
	f := query.New(store)

	ts := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	store.PublishMatches([]models.LiveMatch{{Team1: "Lakers", Team2: "Celtics", DetailRef: "401"}}, ts)
	store.PublishDetails(map[string]models.Details{"401": {"home_total": "99"}}, ts.Add(time.Second))

	matches, lastUpdated, ok := f.LiveMatches()
	if !ok || !lastUpdated.Equal(ts.Add(time.Second)) {
		t.Errorf("unexpected lastUpdated %v (ok=%v)", lastUpdated, ok)
	}
	if len(matches) != 1 || matches[0].DetailRef != "401" {
		t.Errorf("unexpected matches %#v", matches)
	}

	view := f.Live()
	if view.MatchesUpdated == nil || !view.MatchesUpdated.Equal(ts) {
		t.Errorf("unexpected matchesUpdated %v", view.MatchesUpdated)
	}
}

func TestMatchDetails_NotFoundIsDistinguishable(t *testing.T) {
	store := snapshot.NewStore()
	f := query.New(store)
	store.PublishDetails(map[string]models.Details{"401": {"home_total": "99"}}, time.Now())

	d, err := f.MatchDetails("401")
	if err != nil || d["home_total"] != "99" {
		t.Fatalf("expected cached details, got %v, %v", d, err)
	}

	_, err = f.MatchDetails("999")
	if !errors.Is(err, query.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatus_Counts(t *testing.T) {
	store := snapshot.NewStore()
	f := query.New(store)
	store.PublishMatches([]models.LiveMatch{{DetailRef: "a"}, {DetailRef: "b"}}, time.Now())

	st := f.Status()
	if st.Matches != 2 || st.Details != 0 || st.LastUpdated != nil || st.MatchesUpdated == nil {
		t.Errorf("unexpected status %+v", st)
	}
}

package snapshot

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fortuna/services/live-scores-service/pkg/models"
)

func generation(k int) ([]models.LiveMatch, map[string]models.Details, time.Time) {
	matches := make([]models.LiveMatch, 0, 4)
	details := make(map[string]models.Details, 4)
	for i := 0; i < 4; i++ {
		ref := fmt.Sprintf("m%d", i)
		matches = append(matches, models.LiveMatch{DetailRef: ref, Score: fmt.Sprint(k)})
		details[ref] = models.Details{"gen": float64(k)}
	}
	return matches, details, time.Unix(int64(k), 0)
}

func TestNewStore_EmptySnapshot(t *testing.T) {
	s := NewStore()
	snap := s.Read()

	if snap.Matches == nil || len(snap.Matches) != 0 {
		t.Errorf("expected empty non-nil matches, got %#v", snap.Matches)
	}
	if snap.Details == nil || len(snap.Details) != 0 {
		t.Errorf("expected empty non-nil details, got %#v", snap.Details)
	}
	if snap.HasLastUpdated() {
		t.Errorf("expected absent lastUpdated, got %v", snap.LastUpdated)
	}
}

func TestPublishMatches_KeepsDetailsAndTimestamp(t *testing.T) {
	s := NewStore()
	_, details, ts := generation(1)
	s.PublishDetails(details, ts)

	matches, _, _ := generation(2)
	s.PublishMatches(matches, time.Unix(100, 0))

	snap := s.Read()
	if len(snap.Matches) != 4 || snap.Matches[0].Score != "2" {
		t.Errorf("expected generation 2 matches, got %#v", snap.Matches)
	}
	if snap.Details["m0"]["gen"] != float64(1) {
		t.Errorf("expected generation 1 details to survive, got %#v", snap.Details["m0"])
	}
	if !snap.LastUpdated.Equal(ts) {
		t.Errorf("expected lastUpdated %v, got %v", ts, snap.LastUpdated)
	}
	if !snap.MatchesUpdated.Equal(time.Unix(100, 0)) {
		t.Errorf("expected matchesUpdated to be set, got %v", snap.MatchesUpdated)
	}
}

func TestPublishDetails_ReplacesWholesale(t *testing.T) {
	s := NewStore()
	s.PublishDetails(map[string]models.Details{"a": {"x": "1"}, "b": {"x": "2"}}, time.Unix(1, 0))
	s.PublishDetails(map[string]models.Details{"b": {"x": "3"}}, time.Unix(2, 0))

	if _, ok := s.DetailsFor("a"); ok {
		t.Error("expected ref a to be dropped on replace")
	}
	d, ok := s.DetailsFor("b")
	if !ok || d["x"] != "3" {
		t.Errorf("expected ref b to hold new value, got %#v", d)
	}
}

func TestPublish_CopiesInput(t *testing.T) {
	s := NewStore()
	matches := []models.LiveMatch{{DetailRef: "m1", Score: "1 - 0"}}
	details := map[string]models.Details{"m1": {"x": "y"}}

	s.PublishMatches(matches, time.Now())
	s.PublishDetails(details, time.Now())

	matches[0].Score = "tampered"
	delete(details, "m1")

	snap := s.Read()
	if snap.Matches[0].Score != "1 - 0" {
		t.Errorf("published matches changed through caller slice: %q", snap.Matches[0].Score)
	}
	if _, ok := snap.Details["m1"]; !ok {
		t.Error("published details changed through caller map")
	}
}

// Readers racing with publishers must only ever observe whole generations,
// and details never newer than matches.
func TestStore_ConcurrentReadsSeeConsistentSnapshots(t *testing.T) {
	s := NewStore()
	const generations = 200
	const readers = 8

	done := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan string, readers)

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if msg := checkSnapshot(s.Read()); msg != "" {
					errs <- msg
					return
				}
			}
		}()
	}

	for k := 1; k <= generations; k++ {
		matches, details, ts := generation(k)
		s.PublishMatches(matches, ts)
		s.PublishDetails(details, ts)
	}
	close(done)
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func checkSnapshot(snap Snapshot) string {
	matchGen := -1
	for _, m := range snap.Matches {
		var g int
		fmt.Sscan(m.Score, &g)
		if matchGen == -1 {
			matchGen = g
		} else if g != matchGen {
			return fmt.Sprintf("torn match list: generations %d and %d", matchGen, g)
		}
	}

	detailGen := -1
	for _, d := range snap.Details {
		g := int(d["gen"].(float64))
		if detailGen == -1 {
			detailGen = g
		} else if g != detailGen {
			return fmt.Sprintf("torn details map: generations %d and %d", detailGen, g)
		}
	}

	if detailGen != -1 && int(snap.LastUpdated.Unix()) != detailGen {
		return fmt.Sprintf("lastUpdated %d does not match details generation %d", snap.LastUpdated.Unix(), detailGen)
	}
	if detailGen > matchGen {
		return fmt.Sprintf("details generation %d newer than matches generation %d", detailGen, matchGen)
	}
	return ""
}

package poller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fortuna/services/live-scores-service/internal/snapshot"
	"github.com/fortuna/services/live-scores-service/pkg/contracts"
	"github.com/fortuna/services/live-scores-service/pkg/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Defaults used when Config leaves a field zero
const (
	DefaultInterval          = 10 * time.Second
	DefaultFetchTimeout      = 10 * time.Second
	DefaultDetailConcurrency = 4
)

// Notifier receives an update after every publish.
// Notify is called on the scheduler goroutine and must not block.
type Notifier interface {
	Notify(update models.SnapshotUpdate)
}

// Config controls the refresh loop
type Config struct {
	League            string        // log prefix and update tag
	Interval          time.Duration // wait after a cycle completes
	FetchTimeout      time.Duration // bound on every provider call
	DetailConcurrency int           // parallel details fetches per cycle
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.DetailConcurrency <= 0 {
		c.DetailConcurrency = DefaultDetailConcurrency
	}
	return c
}

// Stats is a point-in-time view of the scheduler counters
type Stats struct {
	State             string        `json:"state"`
	Cycles            uint64        `json:"cycles"`
	AbortedCycles     uint64        `json:"aborted_cycles"`
	ItemFailures      uint64        `json:"item_failures"`
	LastCycleDuration time.Duration `json:"last_cycle_duration_ns"`
	LastCycleAt       time.Time     `json:"last_cycle_at"`
}

// Scheduler runs the two-phase refresh against the scrape provider and
// publishes the results into the snapshot store. It is the only caller of the provider.
type Scheduler struct {
	provider  contracts.ScrapeProvider
	store     *snapshot.Store
	notifiers []Notifier
	cfg       Config
	now       func() time.Time

	state         atomic.Int32
	cycles        atomic.Uint64
	abortedCycles atomic.Uint64
	itemFailures  atomic.Uint64
	lastCycleDur  atomic.Int64
	lastCycleAt   atomic.Int64
}

// NewScheduler creates a scheduler publishing into store
func NewScheduler(
	provider contracts.ScrapeProvider,
	store *snapshot.Store,
	cfg Config,
	notifiers ...Notifier,
) *Scheduler {
	return &Scheduler{
		provider:  provider,
		store:     store,
		notifiers: notifiers,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
}

// Run refreshes until ctx is cancelled. The interval wait starts after each
// cycle completes, so a slow cycle delays the next one instead of overlapping it.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("[%s] Starting refresh scheduler (interval %s)", s.cfg.League, s.cfg.Interval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Stopping refresh scheduler", s.cfg.League)
			return
		case <-timer.C:
			s.RunOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// RunOnce performs one refresh cycle. The returned error is informational:
// every failure is already contained and logged.
func (s *Scheduler) RunOnce(ctx context.Context) (err error) {
	cycleID := uuid.NewString()
	league := s.cfg.League
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
			log.Printf("[%s] Cycle %s crashed: %v", league, cycleID, err)
		}
		s.state.Store(int32(StateIdle))
		s.cycles.Add(1)
		s.lastCycleDur.Store(int64(time.Since(start)))
		s.lastCycleAt.Store(start.UnixNano())
	}()

	// Phase 1: match list
	s.state.Store(int32(StateFetchingMatches))
	matches, err := s.fetchLiveMatches(ctx)
	if err != nil {
		s.abortedCycles.Add(1)
		log.Printf("[%s] Cycle %s aborted: %v", league, cycleID, err)
		return err
	}

	s.store.PublishMatches(matches, s.now())
	s.state.Store(int32(StatePublishedMatches))
	published := s.store.Read()
	s.notify(models.SnapshotUpdate{
		Kind:      models.UpdateMatches,
		League:    league,
		CycleID:   cycleID,
		Timestamp: published.MatchesUpdated,
		Matches:   published.Matches,
	})
	log.Printf("[%s] Cycle %s published %d live matches", league, cycleID, len(matches))

	// Phase 2: per-match details
	s.state.Store(int32(StateFetchingDetails))
	details, failures := s.fetchAllDetails(ctx, matches)

	if ctx.Err() != nil {
		// Shutting down; keep the previously published details
		return ctx.Err()
	}

	lastUpdated := s.now()
	if len(matches) > 0 && len(details) == 0 {
		// Nothing fresh to vouch for; keep reporting the previous refresh time
		lastUpdated = s.store.Read().LastUpdated
	}

	s.store.PublishDetails(details, lastUpdated)
	s.state.Store(int32(StatePublishedDetails))
	published = s.store.Read()
	s.notify(models.SnapshotUpdate{
		Kind:      models.UpdateDetails,
		League:    league,
		CycleID:   cycleID,
		Timestamp: published.LastUpdated,
		Details:   published.Details,
	})

	log.Printf("[%s] Cycle %s published details for %d/%d matches in %s",
		league, cycleID, len(details), len(details)+failures, time.Since(start).Round(time.Millisecond))

	return nil
}

// fetchLiveMatches calls the provider list operation under the per-call timeout
func (s *Scheduler) fetchLiveMatches(ctx context.Context) (matches []models.LiveMatch, err error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %w", ErrProviderUnavailable, panicError(r))
		}
	}()

	matches, err = s.provider.FetchLiveMatches(callCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if matches == nil {
		matches = []models.LiveMatch{}
	}
	return matches, nil
}

// fetchAllDetails fetches details for every distinct DetailRef.
// Failures are logged and counted, never returned.
func (s *Scheduler) fetchAllDetails(ctx context.Context, matches []models.LiveMatch) (map[string]models.Details, int) {
	details := make(map[string]models.Details, len(matches))
	var mu sync.Mutex
	failures := 0

	var g errgroup.Group
	g.SetLimit(s.cfg.DetailConcurrency)

	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		ref := m.DetailRef
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true

		g.Go(func() error {
			d, err := s.fetchMatchDetails(ctx, ref)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				s.itemFailures.Add(1)
				log.Printf("[%s] %v", s.cfg.League, err)
				return nil
			}
			details[ref] = d
			return nil
		})
	}
	_ = g.Wait()

	return details, failures
}

// fetchMatchDetails calls the provider details operation under the per-call timeout
func (s *Scheduler) fetchMatchDetails(ctx context.Context, ref string) (d models.Details, err error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = &ItemFetchError{Ref: ref, Err: panicError(r)}
		}
	}()

	d, err = s.provider.FetchMatchDetails(callCtx, ref)
	if err != nil {
		return nil, &ItemFetchError{Ref: ref, Err: err}
	}
	if d == nil {
		return nil, &ItemFetchError{Ref: ref, Err: errors.New("provider returned no details")}
	}
	return d, nil
}

func (s *Scheduler) notify(update models.SnapshotUpdate) {
	for _, n := range s.notifiers {
		n.Notify(update)
	}
}

// State returns where the scheduler is in its cycle
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Stats returns the scheduler counters
func (s *Scheduler) Stats() Stats {
	st := Stats{
		State:             s.State().String(),
		Cycles:            s.cycles.Load(),
		AbortedCycles:     s.abortedCycles.Load(),
		ItemFailures:      s.itemFailures.Load(),
		LastCycleDuration: time.Duration(s.lastCycleDur.Load()),
	}
	if at := s.lastCycleAt.Load(); at != 0 {
		st.LastCycleAt = time.Unix(0, at)
	}
	return st
}

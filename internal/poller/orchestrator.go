package poller

import (
	"context"
	"log"
	"sync"
)

// Runner is a background loop that stops when its context is cancelled
type Runner interface {
	Run(ctx context.Context)
}

// Orchestrator runs the refresh scheduler together with the loops that
// drain its notifications (stream publisher, websocket hub)
type Orchestrator struct {
	scheduler *Scheduler
	sinks     map[string]Runner
}

// NewOrchestrator creates a new orchestrator for scheduler
func NewOrchestrator(scheduler *Scheduler) *Orchestrator {
	return &Orchestrator{
		scheduler: scheduler,
		sinks:     make(map[string]Runner),
	}
}

// AddSink registers a background loop started alongside the scheduler
func (o *Orchestrator) AddSink(name string, r Runner) {
	o.sinks[name] = r
}

// Start launches the scheduler and every sink, then blocks until all of them stop
func (o *Orchestrator) Start(ctx context.Context) {
	var wg sync.WaitGroup

	for name, sink := range o.sinks {
		wg.Add(1)
		go func(r Runner, key string) {
			defer wg.Done()
			r.Run(ctx)
			log.Printf("Sink %s stopped", key)
		}(sink, name)

		log.Printf("Started sink %s", name)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		o.scheduler.Run(ctx)
	}()

	wg.Wait()
	log.Println("All background loops stopped")
}

package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/fortuna/services/live-scores-service/pkg/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Approximate cap on stream length
	streamMaxLen = 1000

	// Pending updates kept while Redis is slow
	bufferSize = 64

	publishTimeout = 5 * time.Second
)

// StreamPublisher publishes snapshot updates to a Redis stream.
// Notify never blocks the refresh scheduler; Run does the network work.
type StreamPublisher struct {
	client  redis.Cmdable
	updates chan models.SnapshotUpdate
	dropped atomic.Uint64
	sent    atomic.Uint64
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client redis.Cmdable) *StreamPublisher {
	return &StreamPublisher{
		client:  client,
		updates: make(chan models.SnapshotUpdate, bufferSize),
	}
}

// StreamKey returns the stream a league's updates are written to
func StreamKey(league string) string {
	return fmt.Sprintf("live.updates.%s", league)
}

// Notify queues an update, dropping it if the buffer is full
func (p *StreamPublisher) Notify(update models.SnapshotUpdate) {
	select {
	case p.updates <- update:
	default:
		p.dropped.Add(1)
		log.Printf("[%s] Stream buffer full, dropping %s update", update.League, update.Kind)
	}
}

// Run writes queued updates to Redis until ctx is cancelled
func (p *StreamPublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-p.updates:
			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			if err := p.Publish(pubCtx, update); err != nil {
				log.Printf("[%s] Error publishing %s update: %v", update.League, update.Kind, err)
			} else {
				p.sent.Add(1)
			}
			cancel()
		}
	}
}

// Publish writes one update to the league stream
func (p *StreamPublisher) Publish(ctx context.Context, update models.SnapshotUpdate) error {
	values, err := streamValues(update)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(update.League),
		MaxLen: streamMaxLen,
		Approx: true,
		Values: values,
	}).Err()
}

// Metrics returns publish counters
func (p *StreamPublisher) Metrics() map[string]interface{} {
	return map[string]interface{}{
		"sent":    p.sent.Load(),
		"dropped": p.dropped.Load(),
		"pending": len(p.updates),
	}
}

func streamValues(update models.SnapshotUpdate) (map[string]interface{}, error) {
	data, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s update: %w", update.Kind, err)
	}

	return map[string]interface{}{
		"data":     string(data),
		"type":     string(update.Kind),
		"cycle_id": update.CycleID,
		"count":    update.Count(),
	}, nil
}

package publisher

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/fortuna/services/live-scores-service/pkg/models"
	"github.com/redis/go-redis/v9"
)

func sampleUpdate() models.SnapshotUpdate {
	return models.SnapshotUpdate{
		Kind:      models.UpdateMatches,
		League:    "basketball_nba",
		CycleID:   "cycle-1",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Matches:   []models.LiveMatch{{Team1: "Heat", Team2: "Knicks", Score: "50 - 48", DetailRef: "401"}},
	}
}

func TestStreamKey(t *testing.T) {
	if got := StreamKey("basketball_nba"); got != "live.updates.basketball_nba" {
		t.Errorf("unexpected stream key %q", got)
	}
}

func TestStreamValues(t *testing.T) {
	values, err := streamValues(sampleUpdate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["type"] != "matches" || values["cycle_id"] != "cycle-1" || values["count"] != 1 {
		t.Errorf("unexpected values %#v", values)
	}

	var decoded models.SnapshotUpdate
	if err := json.Unmarshal([]byte(values["data"].(string)), &decoded); err != nil {
		t.Fatalf("data is not valid JSON: %v", err)
	}
	if decoded.Matches[0].DetailRef != "401" {
		t.Errorf("unexpected decoded payload %+v", decoded)
	}
}

func TestNotify_DropsWhenBufferFull(t *testing.T) {
	p := NewStreamPublisher(nil)

	for i := 0; i < bufferSize+3; i++ {
		p.Notify(sampleUpdate())
	}

	m := p.Metrics()
	if m["dropped"] != uint64(3) || m["pending"] != bufferSize {
		t.Errorf("unexpected metrics %#v", m)
	}
}

// Integration test against a real Redis.
// Skipped when REDIS_URL is not set.
func TestPublish_WritesToStream(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set, skipping integration test")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse REDIS_URL: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	update := sampleUpdate()
	update.League = "test_" + time.Now().Format("150405.000000")
	key := StreamKey(update.League)
	defer client.Del(ctx, key)

	p := NewStreamPublisher(client)
	if err := p.Publish(ctx, update); err != nil {
		t.Fatalf("publish: %v", err)
	}

	entries, err := client.XRange(ctx, key, "-", "+").Result()
	if err != nil {
		t.Fatalf("xrange: %v", err)
	}
	if len(entries) != 1 || entries[0].Values["type"] != "matches" {
		t.Errorf("unexpected stream entries %#v", entries)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/services/live-scores-service/internal/config"
	"github.com/fortuna/services/live-scores-service/internal/handlers"
	"github.com/fortuna/services/live-scores-service/internal/hub"
	"github.com/fortuna/services/live-scores-service/internal/poller"
	"github.com/fortuna/services/live-scores-service/internal/providers/espn"
	"github.com/fortuna/services/live-scores-service/internal/publisher"
	"github.com/fortuna/services/live-scores-service/internal/query"
	"github.com/fortuna/services/live-scores-service/internal/registry"
	"github.com/fortuna/services/live-scores-service/internal/snapshot"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting Live Scores Service...")

	// Load configuration from environment
	cfg := config.LoadConfig()

	// Resolve the league to scrape
	leagueRegistry := registry.New()
	module, err := leagueRegistry.GetModule(cfg.Refresh.League)
	if err != nil {
		log.Fatalf("Unknown league %q (available: %v): %v", cfg.Refresh.League, leagueRegistry.AllLeagueKeys(), err)
	}

	// Initialize components
	espnClient := espn.NewWithURL(cfg.Provider.ESPNBaseURL)
	provider := espn.NewProvider(espnClient, module)
	store := snapshot.NewStore()
	wsHub := hub.NewHub(allowOrigin(cfg.Server.CORSOrigins))

	notifiers := []poller.Notifier{wsHub}

	// Redis update stream is optional
	var streamPublisher *publisher.StreamPublisher
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}

		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")

		streamPublisher = publisher.NewStreamPublisher(redisClient)
		notifiers = append(notifiers, streamPublisher)
	} else {
		log.Println("REDIS_URL not set, update stream disabled")
	}

	scheduler := poller.NewScheduler(provider, store, poller.Config{
		League:            module.GetLeagueKey(),
		Interval:          cfg.Refresh.Interval,
		FetchTimeout:      cfg.Refresh.FetchTimeout,
		DetailConcurrency: cfg.Refresh.DetailConcurrency,
	}, notifiers...)

	// Create orchestrator
	orch := poller.NewOrchestrator(scheduler)
	orch.AddSink("websocket_hub", wsHub)

	// HTTP API
	handler := handlers.NewHandler(query.New(store), scheduler, module.GetLeagueKey())
	handler.AddMetrics("websocket_hub", wsHub)
	if streamPublisher != nil {
		orch.AddSink("redis_stream", streamPublisher)
		handler.AddMetrics("redis_stream", streamPublisher)
	}

	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     handlers.NewRouter(handler, wsHub.ServeWS, cfg.Server.CORSOrigins),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopsDone := make(chan struct{})
	go func() {
		log.Printf("Starting %s refresh loop...", module.GetDisplayName())
		orch.Start(ctx)
		close(loopsDone)
	}()

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Live Scores API listening on %s", cfg.Server.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Printf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received shutdown signal: %v", sig)
	}

	// Stop background loops, then drain in-flight requests
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
		srv.Close()
	}
	<-loopsDone

	log.Println("Live Scores Service stopped")
}

// allowOrigin builds the websocket origin check from the CORS allow list
func allowOrigin(origins []string) func(string) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return nil
		}
		allowed[o] = true
	}
	return func(origin string) bool {
		// Non-browser clients send no Origin
		return origin == "" || allowed[origin]
	}
}

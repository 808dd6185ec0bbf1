package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/fortuna/services/live-scores-service/internal/poller"
	"github.com/fortuna/services/live-scores-service/internal/query"
	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// StatsSource reports refresh scheduler counters
type StatsSource interface {
	Stats() poller.Stats
}

// MetricsSource reports counters for a downstream sink
type MetricsSource interface {
	Metrics() map[string]interface{}
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	facade    *query.Facade
	scheduler StatsSource
	league    string

	mu    sync.RWMutex
	sinks map[string]MetricsSource
}

// NewHandler creates a new handler serving the facade's snapshot
func NewHandler(facade *query.Facade, scheduler StatsSource, league string) *Handler {
	return &Handler{
		facade:    facade,
		scheduler: scheduler,
		league:    league,
		sinks:     make(map[string]MetricsSource),
	}
}

// AddMetrics includes a sink's counters in the health report
func (h *Handler) AddMetrics(name string, src MetricsSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks[name] = src
}

// GetLiveMatches returns the cached live match list
// GET /api/live_matches
func (h *Handler) GetLiveMatches(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.facade.Live())
}

// GetMatchDetails returns cached details for one match
// GET /api/match_details?ref={detail_ref}
func (h *Handler) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		// Older clients pass the reference as url
		ref = r.URL.Query().Get("url")
	}
	if ref == "" {
		respondError(w, http.StatusBadRequest, "missing ref", nil)
		return
	}

	details, err := h.facade.MatchDetails(ref)
	if errors.Is(err, query.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no cached details for this match", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read details", err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	sinks := make(map[string]interface{}, len(h.sinks))
	for name, src := range h.sinks {
		sinks[name] = src.Metrics()
	}
	h.mu.RUnlock()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "live-scores-service",
		"league":    h.league,
		"timestamp": time.Now().UTC(),
		"scheduler": h.scheduler.Stats(),
		"snapshot":  h.facade.Status(),
		"sinks":     sinks,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("error: %s - %v", message, err)
	}

	respondJSON(w, status, models.ErrorResponse{
		Error: message,
		Code:  status,
	})
}

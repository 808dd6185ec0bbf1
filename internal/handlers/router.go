package handlers

import (
	"net/http"
	"time"

	"github.com/fortuna/services/live-scores-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const requestTimeout = 30 * time.Second

// NewRouter wires the API routes. ws may be nil when no websocket hub runs.
func NewRouter(h *Handler, ws http.HandlerFunc, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Websocket connections outlive any request timeout
	if ws != nil {
		r.Get("/ws", ws)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))

		r.Get("/health", h.HealthCheck)

		r.Route("/api", func(r chi.Router) {
			r.Get("/live_matches", h.GetLiveMatches)
			r.Get("/match_details", h.GetMatchDetails)
		})
	})

	return r
}

// Package api provides the HTTP server for Moodlet: check-ins, streaks,
// badges, the shop, weekly reviews, and data export.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ReedRawlings/moodlet/internal/app/checkin"
	"github.com/ReedRawlings/moodlet/internal/app/reminder"
	"github.com/ReedRawlings/moodlet/internal/domain"
	"github.com/ReedRawlings/moodlet/internal/infra/sqlite"
)

// Server is the Moodlet HTTP API server.
type Server struct {
	db             *sqlite.DB
	checkin        *checkin.Service
	clock          domain.Clock
	policy         reminder.Policy
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, svc *checkin.Service, clock domain.Clock, policy reminder.Policy) *Server {
	return &Server{db: db, checkin: svc, clock: clock, policy: policy}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", s.handleProfile)

		r.Post("/checkins", s.handleCheckIn)
		r.Get("/checkins", s.handleListCheckIns)
		r.Get("/streak", s.handleStreak)
		r.Get("/badges", s.handleBadges)
		r.Get("/prompts", s.handlePrompts)

		r.Route("/shop", func(r chi.Router) {
			r.Get("/catalog", s.handleCatalog)
			r.Post("/purchase", s.handlePurchase)
		})

		r.Route("/companion", func(r chi.Router) {
			r.Get("/", s.handleGetCompanion)
			r.Post("/", s.handleCreateCompanion)
			r.Post("/equip", s.handleEquip)
			r.Post("/unequip", s.handleUnequip)
			r.Post("/background", s.handleEquipBackground)
		})

		r.Get("/review", s.handleReviewStatus)
		r.Post("/review", s.handleCompleteReview)

		r.Get("/export", s.handleExport)
		r.Get("/reminder", s.handleReminder)

		r.Post("/data/erase", s.handleEraseData)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Package server exposes the read-only monitoring surface of the pipeline:
// a health check and aggregate statistics. No handler mutates state.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/dealflow/internal/service"
)

type Server struct {
	db        *sql.DB
	stats     service.StatsService
	logger    *slog.Logger
	startedAt time.Time
}

func New(database *sql.DB, stats service.StatsService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		db:        database,
		stats:     stats,
		logger:    logger,
		startedAt: time.Now().UTC(),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Get("/api/stats", s.handleStats)
	return r
}

// ListenAndServe starts the HTTP server and shuts it down when the context is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("http server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type healthResponse struct {
	Status        string         `json:"status"`
	Database      string         `json:"database"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Counts        map[string]int `json:"counts,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "healthy",
		Database:      "connected",
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
	}

	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Warn("health check database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		s.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	stats, err := s.stats.Snapshot(r.Context())
	if err != nil {
		s.logger.Warn("health check counts failed", "error", err)
		resp.Status = "degraded"
		s.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.Counts = map[string]int{
		"leads":    stats.Leads.Total,
		"deals":    stats.Deals.Total,
		"projects": stats.Projects.Total,
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type statsResponse struct {
	Leads struct {
		Total             int     `json:"total"`
		Qualified         int     `json:"qualified"`
		QualificationRate float64 `json:"qualification_rate"`
	} `json:"leads"`
	Deals struct {
		Total     int     `json:"total"`
		Open      int     `json:"open"`
		ClosedWon int     `json:"closed_won"`
		CloseRate float64 `json:"close_rate"`
	} `json:"deals"`
	Projects struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
	} `json:"projects"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("stats snapshot failed", "error", err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	var resp statsResponse
	resp.Leads.Total = stats.Leads.Total
	resp.Leads.Qualified = stats.Leads.Qualified
	resp.Leads.QualificationRate = stats.Leads.QualificationRate
	resp.Deals.Total = stats.Deals.Total
	resp.Deals.Open = stats.Deals.Open
	resp.Deals.ClosedWon = stats.Deals.ClosedWon
	resp.Deals.CloseRate = stats.Deals.CloseRate
	resp.Projects.Total = stats.Projects.Total
	resp.Projects.Completed = stats.Projects.Completed
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

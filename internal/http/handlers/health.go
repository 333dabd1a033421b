package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cmulenga/internhub-be/internal/http/respond"
)

// Pinger reports backing-store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime, basic status, and database reachability.
type HealthHandler struct {
	startedAt time.Time
	db        Pinger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, db Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, db: db}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleIndex)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":   "healthy",
		"database": "connected",
		"uptime":   time.Since(h.startedAt).Truncate(time.Second).String(),
	}
	if err := h.db.Ping(r.Context()); err != nil {
		status["status"] = "unhealthy"
		status["database"] = "connection failed"
		respond.JSON(w, http.StatusInternalServerError, "service degraded", status)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", status)
}

func (h *HealthHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "Internship Portal API is running", map[string]any{
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":         "/api/auth",
			"internships":  "/api/internships",
			"employers":    "/api/employers",
			"applications": "/api/applications",
		},
	})
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmulenga/internhub-be/internal/auth"
	"github.com/cmulenga/internhub-be/internal/http/respond"
	"github.com/cmulenga/internhub-be/internal/middleware"
	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/storage"
)

// EmployerHandler owns the employer dashboard reads: the authenticated
// employer's own postings and the applications against them.
type EmployerHandler struct {
	internships  storage.InternshipStore
	applications storage.ApplicationStore
	tokens       *auth.TokenManager
}

// NewEmployerHandler constructs the handler.
func NewEmployerHandler(internships storage.InternshipStore, applications storage.ApplicationStore, tokens *auth.TokenManager) *EmployerHandler {
	return &EmployerHandler{internships: internships, applications: applications, tokens: tokens}
}

// Register attaches employer routes to the mux.
func (h *EmployerHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/employers/internships", h.authed(h.handleMyInternships))
	mux.Handle("GET /api/employers/applications", h.authed(h.handleMyApplications))
}

func (h *EmployerHandler) authed(fn http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(h.tokens, middleware.RequireRole(fn, models.UserTypeEmployer))
}

func (h *EmployerHandler) handleMyInternships(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication token required")
		return
	}
	internships, err := h.internships.ListInternshipsByEmployer(r.Context(), claims.UserID)
	if err != nil {
		slog.Error("list employer internships failed", "employer_id", claims.UserID, "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch internships")
		return
	}
	respond.JSON(w, http.StatusOK, "internships fetched", internships)
}

func (h *EmployerHandler) handleMyApplications(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication token required")
		return
	}
	applications, err := h.applications.ListApplicationsByEmployer(r.Context(), claims.UserID)
	if err != nil {
		slog.Error("list employer applications failed", "employer_id", claims.UserID, "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch applications")
		return
	}
	respond.JSON(w, http.StatusOK, "applications fetched", applications)
}

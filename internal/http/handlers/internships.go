package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmulenga/internhub-be/internal/auth"
	"github.com/cmulenga/internhub-be/internal/http/respond"
	"github.com/cmulenga/internhub-be/internal/middleware"
	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/models/dto"
	"github.com/cmulenga/internhub-be/internal/storage"
)

// InternshipHandler owns the /api/internships endpoints. Browsing is public;
// posting requires an employer or admin token.
type InternshipHandler struct {
	store  storage.InternshipStore
	tokens *auth.TokenManager
}

// NewInternshipHandler constructs the handler.
func NewInternshipHandler(store storage.InternshipStore, tokens *auth.TokenManager) *InternshipHandler {
	return &InternshipHandler{store: store, tokens: tokens}
}

// Register attaches internship routes to the mux.
func (h *InternshipHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/internships", h.handleList)
	mux.HandleFunc("GET /api/internships/{id}", h.handleGet)
	mux.Handle("POST /api/internships", middleware.RequireAuth(h.tokens,
		middleware.RequireRole(http.HandlerFunc(h.handleCreate),
			models.UserTypeEmployer, models.UserTypeAdmin)))
}

func (h *InternshipHandler) handleList(w http.ResponseWriter, r *http.Request) {
	internships, err := h.store.ListInternships(r.Context())
	if err != nil {
		slog.Error("list internships failed", "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch internships")
		return
	}
	respond.JSON(w, http.StatusOK, "internships fetched", internships)
}

func (h *InternshipHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid internship id")
		return
	}
	internship, err := h.store.GetInternship(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "internship not found")
			return
		}
		slog.Error("get internship failed", "internship_id", id, "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch internship")
		return
	}
	respond.JSON(w, http.StatusOK, "internship fetched", internship)
}

func (h *InternshipHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication token required")
		return
	}
	var req dto.CreateInternshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Deadline) == "" {
		respond.Error(w, http.StatusBadRequest, "title, description, and deadline are required")
		return
	}
	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "deadline must be YYYY-MM-DD")
		return
	}

	// Employers always post under their own account; admins post on behalf
	// of an employer.
	employerID := claims.UserID
	if claims.UserType == models.UserTypeAdmin {
		if req.EmployerID == 0 {
			respond.Error(w, http.StatusBadRequest, "employer_id is required")
			return
		}
		employerID = req.EmployerID
	}

	created, err := h.store.CreateInternship(r.Context(), models.Internship{
		EmployerID:   employerID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Requirements: strings.TrimSpace(req.Requirements),
		Deadline:     deadline,
	})
	if err != nil {
		slog.Error("create internship failed", "employer_id", employerID, "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to create internship")
		return
	}
	respond.JSON(w, http.StatusCreated, "internship created successfully", created)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

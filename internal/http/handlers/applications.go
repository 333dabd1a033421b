package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmulenga/internhub-be/internal/auth"
	"github.com/cmulenga/internhub-be/internal/http/respond"
	"github.com/cmulenga/internhub-be/internal/middleware"
	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/models/dto"
	"github.com/cmulenga/internhub-be/internal/storage"
)

// ApplicationHandler owns the /api/applications endpoints. Students apply,
// employers and admins move applications through the status flow.
type ApplicationHandler struct {
	store  storage.ApplicationStore
	tokens *auth.TokenManager
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(store storage.ApplicationStore, tokens *auth.TokenManager) *ApplicationHandler {
	return &ApplicationHandler{store: store, tokens: tokens}
}

// Register attaches application routes to the mux.
func (h *ApplicationHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/applications", h.authed(h.handleList, models.UserTypeAdmin))
	mux.Handle("GET /api/applications/{id}", middleware.RequireAuth(h.tokens, http.HandlerFunc(h.handleGet)))
	mux.Handle("POST /api/applications", h.authed(h.handleCreate, models.UserTypeStudent))
	mux.Handle("PUT /api/applications/{id}/status", h.authed(h.handleUpdateStatus,
		models.UserTypeEmployer, models.UserTypeAdmin))
	mux.Handle("GET /api/students/{id}/applications", middleware.RequireAuth(h.tokens, http.HandlerFunc(h.handleListByStudent)))
}

func (h *ApplicationHandler) authed(fn http.HandlerFunc, allowed ...models.UserType) http.Handler {
	return middleware.RequireAuth(h.tokens, middleware.RequireRole(fn, allowed...))
}

func (h *ApplicationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	applications, err := h.store.ListApplications(r.Context())
	if err != nil {
		slog.Error("list applications failed", "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch applications")
		return
	}
	respond.JSON(w, http.StatusOK, "applications fetched", applications)
}

func (h *ApplicationHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid application id")
		return
	}
	app, err := h.store.GetApplication(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "application not found")
			return
		}
		slog.Error("get application failed", "application_id", id, "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch application")
		return
	}
	respond.JSON(w, http.StatusOK, "application fetched", app)
}

func (h *ApplicationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication token required")
		return
	}
	var req dto.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.InternshipID == 0 {
		respond.Error(w, http.StatusBadRequest, "internship_id is required")
		return
	}

	created, err := h.store.CreateApplication(r.Context(), models.Application{
		StudentID:    claims.UserID,
		InternshipID: req.InternshipID,
		CoverLetter:  req.CoverLetter,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "you have already applied for this internship")
			return
		}
		slog.Error("create application failed",
			"student_id", claims.UserID, "internship_id", req.InternshipID,
			"error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to create application")
		return
	}
	respond.JSON(w, http.StatusCreated, "application submitted successfully", created)
}

func (h *ApplicationHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid application id")
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if !models.ValidApplicationStatus(req.Status) {
		respond.Error(w, http.StatusBadRequest, "invalid status value")
		return
	}

	affected, err := h.store.UpdateApplicationStatus(r.Context(), id, req.Status)
	if err != nil {
		slog.Error("update application status failed", "application_id", id, "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to update application status")
		return
	}
	if affected == 0 {
		respond.Error(w, http.StatusNotFound, "application not found")
		return
	}
	respond.JSON(w, http.StatusOK, "application status updated successfully", nil)
}

func (h *ApplicationHandler) handleListByStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid student id")
		return
	}
	applications, err := h.store.ListApplicationsByStudent(r.Context(), id)
	if err != nil {
		slog.Error("list student applications failed", "student_id", id, "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch student applications")
		return
	}
	respond.JSON(w, http.StatusOK, "applications fetched", applications)
}

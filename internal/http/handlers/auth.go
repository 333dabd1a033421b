package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cmulenga/internhub-be/internal/auth"
	"github.com/cmulenga/internhub-be/internal/http/respond"
	"github.com/cmulenga/internhub-be/internal/middleware"
	"github.com/cmulenga/internhub-be/internal/models/dto"
	"github.com/cmulenga/internhub-be/internal/service"
)

// AuthHandler owns the /api/auth endpoints.
type AuthHandler struct {
	svc    *service.AuthService
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *service.AuthService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/register", h.handleRegister)
	mux.Handle("GET /api/auth/profile", h.authed(h.handleGetProfile))
	mux.Handle("PUT /api/auth/profile", h.authed(h.handleUpdateProfile))
	mux.Handle("PUT /api/auth/change-password", h.authed(h.handleChangePassword))
	mux.Handle("GET /api/auth/verify", h.authed(h.handleVerify))
}

func (h *AuthHandler) authed(fn http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(h.tokens, fn)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	result, err := h.svc.Register(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, fmt.Sprintf("%s registered successfully", result.UserType), result)
}

func (h *AuthHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication token required")
		return
	}
	user, err := h.svc.GetProfile(r.Context(), claims)
	if err != nil {
		serviceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "profile fetched", user)
}

func (h *AuthHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication token required")
		return
	}
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	updated, err := h.svc.UpdateProfile(r.Context(), claims, fields)
	if err != nil {
		serviceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "profile updated successfully", map[string]any{
		"updatedFields": updated,
	})
}

func (h *AuthHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication token required")
		return
	}
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := h.svc.ChangePassword(r.Context(), claims, req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "password updated successfully", nil)
}

func (h *AuthHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication token required")
		return
	}
	respond.JSON(w, http.StatusOK, "token is valid", map[string]any{
		"valid": true,
		"user":  claims,
	})
}

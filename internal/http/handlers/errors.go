package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmulenga/internhub-be/internal/http/respond"
	"github.com/cmulenga/internhub-be/internal/service"
)

// serviceError maps the service failure taxonomy onto HTTP statuses. Anything
// unrecognized is logged with its full context server-side and reported to
// the client as a generic 500.
func serviceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	var dup *service.DuplicateAccountError
	switch {
	case errors.As(err, &verr):
		respond.Error(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &dup):
		msg := dup.Error()
		if dup.ExistingType != "" {
			msg = fmt.Sprintf("%s (%s)", msg, dup.ExistingType)
		}
		respond.Error(w, http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrAccountDeactivated):
		respond.Error(w, http.StatusForbidden, "account is deactivated")
	case errors.Is(err, service.ErrStaleToken):
		respond.Error(w, http.StatusForbidden, "token is no longer valid")
	case errors.Is(err, service.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "user not found")
	default:
		// oops-wrapped errors carry operation and payload attributes.
		slog.Error("unexpected service error", "error", fmt.Sprintf("%+v", err))
		respond.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

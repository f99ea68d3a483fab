package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/orunto/nollywood-film-club/internal/identity"
)

// ContextKey is used for keys in the request context.
type ContextKey string

// CallerKey holds the authenticated identity.Caller in the request context.
const CallerKey ContextKey = "caller"

// callerFrom retrieves the authenticated caller placed in the context by
// requireUser or requireAdmin.
func callerFrom(ctx context.Context) (*identity.Caller, bool) {
	caller, ok := ctx.Value(CallerKey).(*identity.Caller)
	return caller, ok
}

// authenticate extracts the bearer token and resolves it through the gate.
// Writes the 401 envelope itself and returns nil when the request cannot be
// authenticated.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) *identity.Caller {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		h.logger.WarnContext(r.Context(), "Authorization header missing", slog.String("path", r.URL.Path))
		h.respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		h.logger.WarnContext(r.Context(), "Invalid Authorization header format")
		h.respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil
	}

	caller, err := h.gate.CurrentCaller(r.Context(), parts[1])
	if err != nil {
		h.logger.WarnContext(r.Context(), "Caller resolution failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusUnauthorized, "Authentication failed")
		return nil
	}
	return caller
}

// requireUser wraps a handler that needs any authenticated caller.
func (h *Handler) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := h.authenticate(w, r)
		if caller == nil {
			return
		}
		ctx := context.WithValue(r.Context(), CallerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireAdmin wraps a handler reserved for admins. Authenticated
// non-admins get a 403 envelope with a redirect hint for the frontend.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := h.authenticate(w, r)
		if caller == nil {
			return
		}
		if caller.Role != identity.RoleAdmin {
			h.logger.WarnContext(r.Context(), "Non-admin caller on admin route", slog.String("userID", caller.ID), slog.String("path", r.URL.Path))
			h.respondJSON(w, r, http.StatusForbidden, map[string]interface{}{
				"success":    false,
				"error":      "Admin access required",
				"redirectTo": "/user-dashboard",
			})
			return
		}
		ctx := context.WithValue(r.Context(), CallerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

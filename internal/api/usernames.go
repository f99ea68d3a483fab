package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/orunto/nollywood-film-club/internal/domain"
	"github.com/orunto/nollywood-film-club/internal/store"
)

// CheckUsername reports whether a handle is free. The response keeps the
// historical {available, message} shape rather than the standard envelope.
func (h *Handler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CheckUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode username check body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if !domain.IsValidUsername(req.Username) {
		h.respondJSON(w, r, http.StatusBadRequest, map[string]interface{}{
			"available": false,
			"message":   domain.UsernameValidationMessage,
		})
		return
	}

	taken, err := h.usernames.IsTaken(ctx, req.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to check username availability", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to check username")
		return
	}

	if taken {
		h.respondJSON(w, r, http.StatusOK, map[string]interface{}{
			"available": false,
			"message":   "Username is already taken",
		})
		return
	}
	h.respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"available": true,
		"message":   "Username is available",
	})
}

// ReserveUsername claims a handle for the caller. One handle per user; the
// handle itself is unique regardless of casing.
func (h *Handler) ReserveUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := callerFrom(ctx)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.ReserveUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode username reservation body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if !domain.IsValidUsername(req.Username) {
		h.respondError(w, r, http.StatusBadRequest, domain.UsernameValidationMessage)
		return
	}

	reservation := &domain.UsernameReservation{
		ID:          uuid.NewString(),
		StackUserID: caller.ID,
		Username:    strings.ToLower(req.Username),
	}

	if err := h.usernames.Reserve(ctx, reservation); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			h.respondError(w, r, http.StatusConflict, "Username is already taken")
		case errors.Is(err, store.ErrUserHasUsername):
			h.respondError(w, r, http.StatusConflict, "User already has a username")
		default:
			h.logger.ErrorContext(ctx, "Failed to reserve username", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to reserve username")
		}
		return
	}

	h.logger.InfoContext(ctx, "Username reserved", slog.String("userID", caller.ID), slog.String("username", reservation.Username))
	h.respondJSON(w, r, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"username": reservation.Username,
	})
}

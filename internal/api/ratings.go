package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/orunto/nollywood-film-club/internal/domain"
	"github.com/orunto/nollywood-film-club/internal/store"
)

// ListOwnRatings returns the caller's ratings joined with a summary of each
// rated title.
func (h *Handler) ListOwnRatings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := callerFrom(ctx)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	ratings, err := h.ratings.ListByUser(ctx, caller.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list user ratings", slog.String("userID", caller.ID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve ratings")
		return
	}
	h.respondData(w, r, http.StatusOK, ratings)
}

// SubmitRating creates or updates the caller's rating for a title. A second
// submission for the same title updates the existing row; its review text
// is replaced only when the new submission carries one.
func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := callerFrom(ctx)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode rating submission body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Rating submission validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	existing, err := h.ratings.GetByUserAndContent(ctx, caller.ID, req.ContentID)
	if err != nil && !errors.Is(err, store.ErrRatingNotFound) {
		h.logger.ErrorContext(ctx, "Failed to look up existing rating", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to submit rating")
		return
	}

	if existing != nil {
		var review *string
		if req.Review != "" {
			review = &req.Review
		}
		updated, err := h.ratings.Update(ctx, existing.ID, caller.ID, req.Rating, review)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to update existing rating", slog.String("ratingID", existing.ID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to submit rating")
			return
		}
		h.respondDataMessage(w, r, http.StatusOK, updated, "Rating updated successfully")
		return
	}

	rating := &domain.UserRating{
		ID:        uuid.NewString(),
		ContentID: req.ContentID,
		UserID:    caller.ID,
		Rating:    *req.Rating,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if req.Review != "" {
		rating.Review = &req.Review
	}

	if err := h.ratings.Create(ctx, rating); err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			h.respondError(w, r, http.StatusBadRequest, "Content not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to create rating in store", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to submit rating")
		}
		return
	}

	h.logger.InfoContext(ctx, "Rating submitted", slog.String("ratingID", rating.ID), slog.String("contentID", rating.ContentID))
	h.respondDataMessage(w, r, http.StatusCreated, rating, "Rating submitted successfully")
}

// UpdateRating modifies the caller's own rating by id. A rating owned by
// someone else is indistinguishable from a missing one.
func (h *Handler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := callerFrom(ctx)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	ratingID := mux.Vars(r)["ratingId"]

	var req domain.UpdateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode rating update body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Rating update validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	updated, err := h.ratings.Update(ctx, ratingID, caller.ID, req.Rating, req.Review)
	if err != nil {
		if errors.Is(err, store.ErrRatingNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Rating not found or access denied")
		} else {
			h.logger.ErrorContext(ctx, "Failed to update rating", slog.String("ratingID", ratingID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update rating")
		}
		return
	}
	h.respondDataMessage(w, r, http.StatusOK, updated, "Rating updated successfully")
}

// DeleteRating removes the caller's own rating by id.
func (h *Handler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := callerFrom(ctx)
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	ratingID := mux.Vars(r)["ratingId"]

	if err := h.ratings.Delete(ctx, ratingID, caller.ID); err != nil {
		if errors.Is(err, store.ErrRatingNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Rating not found or access denied")
		} else {
			h.logger.ErrorContext(ctx, "Failed to delete rating", slog.String("ratingID", ratingID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to delete rating")
		}
		return
	}

	h.logger.InfoContext(ctx, "Rating deleted", slog.String("ratingID", ratingID), slog.String("userID", caller.ID))
	h.respondMessage(w, r, http.StatusOK, "Rating deleted successfully")
}

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

func reviewFromRequest(id string, req *domain.CreateReviewRequest) *domain.Review {
	return &domain.Review{
		ID:          id,
		ContentID:   req.ContentID,
		Title:       req.Title,
		Description: req.Description,
		Score:       req.Score,
		Reviewer:    req.Reviewer,
		ExternalURL: req.ExternalURL,
		ReviewImage: req.ReviewImage,
		PublishedAt: req.PublishedAt,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

// ListReviews returns the public review feed, oldest published first.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviews, err := h.reviews.List(ctx, limitParam(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list reviews", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	h.respondData(w, r, http.StatusOK, reviews)
}

// AdminListReviews returns every review for the admin dashboard.
func (h *Handler) AdminListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviews, err := h.reviews.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list all reviews", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	h.respondData(w, r, http.StatusOK, reviews)
}

// CreateReview handles the admin request to add an editorial review.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode review creation request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Review creation request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review := reviewFromRequest(uuid.NewString(), &req)
	if err := h.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			h.respondError(w, r, http.StatusBadRequest, "Content not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to create review in store", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to create review")
		}
		return
	}

	h.logger.InfoContext(ctx, "Review created", slog.String("reviewID", review.ID), slog.String("title", review.Title))
	h.respondDataMessage(w, r, http.StatusCreated, review, "Review created successfully")
}

// UpdateReview replaces every mutable field of a review.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := mux.Vars(r)["reviewId"]

	var req domain.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode review update request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Review update request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review := reviewFromRequest(reviewID, &req)
	if err := h.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Review not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to update review in store", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update review")
		}
		return
	}
	h.respondDataMessage(w, r, http.StatusOK, review, "Review updated successfully")
}

// DeleteReview removes an editorial review.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := mux.Vars(r)["reviewId"]

	if err := h.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Review not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to delete review", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to delete review")
		}
		return
	}

	h.logger.InfoContext(ctx, "Review deleted", slog.String("reviewID", reviewID))
	h.respondMessage(w, r, http.StatusOK, "Review deleted successfully")
}

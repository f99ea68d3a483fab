package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"github.com/orunto/nollywood-film-club/internal/domain"
	"github.com/orunto/nollywood-film-club/internal/store"
)

const (
	defaultListLimit = 4
	maxListLimit     = 100
)

// limitParam parses the ?limit query parameter with the shared defaults.
func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultListLimit
	} else if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}

// contentFromRequest maps a full create/replace payload onto a row.
func contentFromRequest(id string, req *domain.CreateContentRequest) *domain.Content {
	return &domain.Content{
		ID:                id,
		Title:             req.Title,
		ContentType:       domain.ContentType(req.ContentType),
		Runtime:           req.Runtime,
		ReleaseDate:       req.ReleaseDate,
		Rating:            req.Rating,
		Synopsis:          req.Synopsis,
		Genre:             pq.StringArray(req.Genre),
		PosterImage:       req.PosterImage,
		TrailerURL:        req.TrailerURL,
		StreamingURL:      req.StreamingURL,
		StreamingPlatform: req.StreamingPlatform,
		OtherPlatform:     req.OtherPlatform,
		SpaceURL:          req.SpaceURL,
		PodcastLinks:      pq.StringArray(req.PodcastLinks),
		IsMovieOfTheWeek:  req.IsMovieOfTheWeek,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
}

// GetFeaturedContent returns the movie of the week, or data: null when no
// title currently carries the flag.
func (h *Handler) GetFeaturedContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content, err := h.content.GetFeatured(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get featured content", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve featured content")
		return
	}
	if content == nil {
		h.respondData(w, r, http.StatusOK, nil)
		return
	}
	h.respondData(w, r, http.StatusOK, content)
}

// ListContent returns non-featured titles with their average ratings.
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content, err := h.content.ListOthers(ctx, limitParam(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list content", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve content")
		return
	}
	h.respondData(w, r, http.StatusOK, content)
}

// GetContentByID returns one title annotated with its average rating.
func (h *Handler) GetContentByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contentID := mux.Vars(r)["contentId"]

	content, err := h.content.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Content not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to get content", slog.String("contentID", contentID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve content")
		}
		return
	}
	h.respondData(w, r, http.StatusOK, content)
}

// ListContentRatings returns every rating for a title, each enriched with
// the rater's display identity.
func (h *Handler) ListContentRatings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contentID := mux.Vars(r)["contentId"]

	if _, err := h.content.GetByID(ctx, contentID); err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Content not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to get content", slog.String("contentID", contentID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve ratings")
		}
		return
	}

	ratings, err := h.ratings.ListByContent(ctx, contentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list ratings for content", slog.String("contentID", contentID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve ratings")
		return
	}

	for _, rating := range ratings {
		display := h.display.ResolveDisplay(ctx, rating.UserID)
		rating.Username = display.Username
		rating.ProfileImage = display.ProfileImage
	}
	h.respondData(w, r, http.StatusOK, ratings)
}

// GetHomepage aggregates the public landing sections in one response. A
// failing section is logged and served empty rather than failing the page.
func (h *Handler) GetHomepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var featured interface{}
	if c, err := h.content.GetFeatured(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Homepage: featured section failed", slog.String("error", err.Error()))
	} else if c != nil {
		featured = c
	}

	pastSpaces := []*domain.Content{}
	if others, err := h.content.ListOthers(ctx, defaultListLimit); err != nil {
		h.logger.ErrorContext(ctx, "Homepage: past spaces section failed", slog.String("error", err.Error()))
	} else {
		pastSpaces = others
	}

	reviews := []*domain.Review{}
	if list, err := h.reviews.List(ctx, defaultListLimit); err != nil {
		h.logger.ErrorContext(ctx, "Homepage: reviews section failed", slog.String("error", err.Error()))
	} else {
		reviews = list
	}

	h.respondData(w, r, http.StatusOK, map[string]interface{}{
		"movieOfTheWeek": featured,
		"pastSpaces":     pastSpaces,
		"reviews":        reviews,
	})
}

// CreateContent handles the admin request to add a title.
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode content creation request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Content creation request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	content := contentFromRequest(uuid.NewString(), &req)
	if err := h.content.Create(ctx, content); err != nil {
		h.logger.ErrorContext(ctx, "Failed to create content in store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to create content")
		return
	}

	h.logger.InfoContext(ctx, "Content created", slog.String("contentID", content.ID), slog.String("title", content.Title))
	h.respondDataMessage(w, r, http.StatusCreated, content, "Content created successfully")
}

// UpdateContent replaces every mutable field of a title.
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contentID := mux.Vars(r)["contentId"]

	var req domain.UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode content update request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Content update request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	content := contentFromRequest(contentID, &req)
	if err := h.content.Update(ctx, content); err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Content not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to update content in store", slog.String("contentID", contentID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update content")
		}
		return
	}
	h.respondDataMessage(w, r, http.StatusOK, content, "Content updated successfully")
}

// DeleteContent removes a title; its ratings and linked reviews go with it.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contentID := mux.Vars(r)["contentId"]

	if err := h.content.Delete(ctx, contentID); err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Content not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to delete content", slog.String("contentID", contentID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to delete content")
		}
		return
	}

	h.logger.InfoContext(ctx, "Content deleted", slog.String("contentID", contentID))
	h.respondMessage(w, r, http.StatusOK, "Content deleted successfully")
}

// SetFeaturedContent flips the movie-of-the-week flag; setting it clears
// the flag from every other title in the same transaction.
func (h *Handler) SetFeaturedContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contentID := mux.Vars(r)["contentId"]

	var req domain.SetFeaturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode set-featured request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	content, err := h.content.SetFeatured(ctx, contentID, req.IsMovieOfTheWeek)
	if err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Content not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to set featured flag", slog.String("contentID", contentID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update content")
		}
		return
	}

	message := "Content removed from movie of the week"
	if req.IsMovieOfTheWeek {
		message = "Content set as movie of the week"
	}
	h.logger.InfoContext(ctx, "Featured flag updated", slog.String("contentID", contentID), slog.Bool("featured", req.IsMovieOfTheWeek))
	h.respondDataMessage(w, r, http.StatusOK, content, message)
}

// AdminListContent returns every title for the admin dashboard.
func (h *Handler) AdminListContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content, err := h.content.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list all content", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve content")
		return
	}
	h.respondData(w, r, http.StatusOK, content)
}

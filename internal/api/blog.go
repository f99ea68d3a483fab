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

// resolveSlug derives the slug for a post: an empty submission falls back
// to the slugified title, an explicit one must already be URL-safe.
func resolveSlug(req *domain.CreateBlogPostRequest) (string, bool) {
	slug := req.Slug
	if slug == "" {
		slug = domain.Slugify(req.Title)
	}
	return slug, domain.IsValidSlug(slug)
}

// ListBlogPosts returns every post for the admin dashboard.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.blog.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list blog posts", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve blog posts")
		return
	}
	h.respondData(w, r, http.StatusOK, posts)
}

// CreateBlogPost handles the admin request to add a post.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode blog post creation request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Blog post creation request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	slug, ok := resolveSlug(&req)
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Slug may contain only lowercase letters, numbers, and hyphens")
		return
	}

	now := time.Now().UTC()
	post := &domain.BlogPost{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Slug:      slug,
		Published: req.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Published {
		post.PublishedAt = &now
		if req.PublishedAt != nil {
			post.PublishedAt = req.PublishedAt
		}
	}

	if err := h.blog.Create(ctx, post); err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			h.respondError(w, r, http.StatusConflict, "A post with this slug already exists")
		} else {
			h.logger.ErrorContext(ctx, "Failed to create blog post in store", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to create blog post")
		}
		return
	}

	h.logger.InfoContext(ctx, "Blog post created", slog.String("postID", post.ID), slog.String("slug", post.Slug))
	h.respondDataMessage(w, r, http.StatusCreated, post, "Blog post created successfully")
}

// UpdateBlogPost replaces every mutable field of a post.
func (h *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID := mux.Vars(r)["postId"]

	var req domain.UpdateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode blog post update request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Blog post update request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	slug, ok := resolveSlug(&req)
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Slug may contain only lowercase letters, numbers, and hyphens")
		return
	}

	// PublishedAt travels with the body; the store keeps the stored
	// timestamp when a published post is edited without one.
	post := &domain.BlogPost{
		ID:          postID,
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Slug:        slug,
		Published:   req.Published,
		PublishedAt: req.PublishedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := h.blog.Update(ctx, post); err != nil {
		switch {
		case errors.Is(err, store.ErrBlogPostNotFound):
			h.respondError(w, r, http.StatusNotFound, "Blog post not found")
		case errors.Is(err, store.ErrSlugTaken):
			h.respondError(w, r, http.StatusConflict, "A post with this slug already exists")
		default:
			h.logger.ErrorContext(ctx, "Failed to update blog post in store", slog.String("postID", postID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update blog post")
		}
		return
	}
	h.respondDataMessage(w, r, http.StatusOK, post, "Blog post updated successfully")
}

// DeleteBlogPost removes a post.
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID := mux.Vars(r)["postId"]

	if err := h.blog.Delete(ctx, postID); err != nil {
		if errors.Is(err, store.ErrBlogPostNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Blog post not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to delete blog post", slog.String("postID", postID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to delete blog post")
		}
		return
	}

	h.logger.InfoContext(ctx, "Blog post deleted", slog.String("postID", postID))
	h.respondMessage(w, r, http.StatusOK, "Blog post deleted successfully")
}

// SetBlogPostPublished toggles the published flag; publishing stamps the
// publication time, unpublishing clears it.
func (h *Handler) SetBlogPostPublished(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID := mux.Vars(r)["postId"]

	var req domain.SetPublishedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode publish toggle request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	post, err := h.blog.SetPublished(ctx, postID, req.Published)
	if err != nil {
		if errors.Is(err, store.ErrBlogPostNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Blog post not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to toggle published flag", slog.String("postID", postID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update blog post")
		}
		return
	}

	message := "Blog post unpublished successfully"
	if req.Published {
		message = "Blog post published successfully"
	}
	h.logger.InfoContext(ctx, "Published flag updated", slog.String("postID", postID), slog.Bool("published", req.Published))
	h.respondDataMessage(w, r, http.StatusOK, post, message)
}

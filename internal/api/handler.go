package api

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/orunto/nollywood-film-club/internal/identity"
	"github.com/orunto/nollywood-film-club/internal/store"
)

// AuthGate resolves a bearer token into the calling identity. Implemented
// by identity.Provider; handler tests substitute a stub.
type AuthGate interface {
	CurrentCaller(ctx context.Context, token string) (*identity.Caller, error)
}

// DisplayResolver turns an external user id into a display identity for
// rendering rating lists. Must not fail; implementations fall back to a
// placeholder.
type DisplayResolver interface {
	ResolveDisplay(ctx context.Context, userID string) identity.Display
}

// Stores groups the data dependencies of the HTTP handlers.
type Stores struct {
	Content   store.ContentStore
	Ratings   store.RatingStore
	Reviews   store.ReviewStore
	Blog      store.BlogStore
	Usernames store.UsernameStore
}

// Handler holds the dependencies for the HTTP handlers.
type Handler struct {
	content   store.ContentStore
	ratings   store.RatingStore
	reviews   store.ReviewStore
	blog      store.BlogStore
	usernames store.UsernameStore
	gate      AuthGate
	display   DisplayResolver
	logger    *slog.Logger
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(s Stores, gate AuthGate, display DisplayResolver, l *slog.Logger, v *validator.Validate) *Handler {
	return &Handler{
		content:   s.Content,
		ratings:   s.Ratings,
		reviews:   s.Reviews,
		blog:      s.Blog,
		usernames: s.Usernames,
		gate:      gate,
		display:   display,
		logger:    l,
		validator: v,
	}
}

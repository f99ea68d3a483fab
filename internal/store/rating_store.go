package store

import (
	"context"
	"errors"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

var (
	ErrRatingNotFound = errors.New("rating not found")
)

// RatingStore defines the data operations for member ratings. Update and
// Delete are owner-scoped: rows belonging to another user behave as if they
// did not exist.
type RatingStore interface {
	// GetByUserAndContent returns the single rating a user holds for a
	// title, or ErrRatingNotFound. Backs the upsert rule.
	GetByUserAndContent(ctx context.Context, userID, contentID string) (*domain.UserRating, error)
	Create(ctx context.Context, rating *domain.UserRating) error
	// Update modifies the caller's own rating. Nil fields are preserved.
	Update(ctx context.Context, id, userID string, rating *float64, review *string) (*domain.UserRating, error)
	Delete(ctx context.Context, id, userID string) error
	// ListByUser returns a member's ratings, oldest first, each joined with
	// a summary of the rated title.
	ListByUser(ctx context.Context, userID string) ([]*domain.UserRatingWithContent, error)
	// ListByContent returns every rating for a title, oldest first.
	ListByContent(ctx context.Context, contentID string) ([]*domain.UserRating, error)
}

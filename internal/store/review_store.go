package store

import (
	"context"
	"errors"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

// ReviewStore defines the data operations for editorial reviews.
//
// Both list methods order by published timestamp ascending. Oldest-first is
// the product's observed feed order; TestListReviewsOrderedOldestFirst pins
// it so a flip to newest-first is a deliberate change.
type ReviewStore interface {
	List(ctx context.Context, limit int) ([]*domain.Review, error)
	ListAll(ctx context.Context) ([]*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id string) error
}

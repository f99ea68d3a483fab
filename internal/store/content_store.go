package store

import (
	"context"
	"errors"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

var (
	ErrContentNotFound = errors.New("content not found")
)

// ContentStore defines the data operations for titles. Read methods that
// annotate results with the average user rating do so with a single
// aggregating join, never per-row queries.
type ContentStore interface {
	// GetFeatured returns the movie of the week, or (nil, nil) when no title
	// carries the flag. If direct data manipulation ever leaves multiple
	// rows flagged, the first by primary key is returned consistently.
	GetFeatured(ctx context.Context) (*domain.Content, error)
	// ListOthers returns non-featured titles ordered by creation time
	// ascending, capped at limit, each annotated with its average rating.
	ListOthers(ctx context.Context, limit int) ([]*domain.Content, error)
	// GetByID returns one title annotated with its average rating, or
	// ErrContentNotFound.
	GetByID(ctx context.Context, id string) (*domain.Content, error)
	// ListAll returns every title ordered by creation time ascending.
	ListAll(ctx context.Context) ([]*domain.Content, error)
	Create(ctx context.Context, content *domain.Content) error
	// Update replaces every mutable column of the row. ErrContentNotFound
	// when the id does not exist.
	Update(ctx context.Context, content *domain.Content) error
	// Delete removes the row; dependent ratings and reviews go with it via
	// the schema's ON DELETE CASCADE.
	Delete(ctx context.Context, id string) error
	// SetFeatured flips the movie-of-the-week flag. Setting it true clears
	// the flag from every other row inside the same transaction, so at most
	// one title is ever featured.
	SetFeatured(ctx context.Context, id string, featured bool) (*domain.Content, error)
}

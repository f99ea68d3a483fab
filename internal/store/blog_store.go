package store

import (
	"context"
	"errors"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

var (
	ErrBlogPostNotFound = errors.New("blog post not found")
	ErrSlugTaken        = errors.New("a post with this slug already exists")
)

// BlogStore defines the data operations for editorial articles.
type BlogStore interface {
	ListAll(ctx context.Context) ([]*domain.BlogPost, error)
	Create(ctx context.Context, post *domain.BlogPost) error
	Update(ctx context.Context, post *domain.BlogPost) error
	Delete(ctx context.Context, id string) error
	// SetPublished flips the published flag. Publishing stamps publishedAt
	// with the current time; unpublishing clears it.
	SetPublished(ctx context.Context, id string, published bool) (*domain.BlogPost, error)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

const blogPostColumns = `id, title, content, excerpt, slug, published, published_at, created_at, updated_at`

// PostgresBlogStore implements BlogStore for PostgreSQL.
type PostgresBlogStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresBlogStore(db *sqlx.DB, logger *slog.Logger) (*PostgresBlogStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresBlogStore{db: db, logger: logger}, nil
}

func (s *PostgresBlogStore) ListAll(ctx context.Context) ([]*domain.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts ORDER BY created_at`

	posts := []*domain.BlogPost{}
	if err := s.db.SelectContext(ctx, &posts, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list blog posts from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

func (s *PostgresBlogStore) Create(ctx context.Context, post *domain.BlogPost) error {
	query := `INSERT INTO blog_posts (id, title, content, excerpt, slug, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt

	_, err := s.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Excerpt, post.Slug,
		post.Published, post.PublishedAt, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Blog post slug already taken", slog.String("slug", post.Slug))
			return ErrSlugTaken
		}
		s.logger.ErrorContext(ctx, "Failed to create blog post in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	s.logger.InfoContext(ctx, "Blog post created in DB", slog.String("postID", post.ID), slog.String("slug", post.Slug))
	return nil
}

func (s *PostgresBlogStore) Update(ctx context.Context, post *domain.BlogPost) error {
	// published_at moves with the published flag: unpublishing clears it,
	// while a published post keeps its stored timestamp unless the caller
	// supplies one (first publication through this path stamps now).
	query := `UPDATE blog_posts SET title = $1, content = $2, excerpt = $3, slug = $4,
			published = $5,
			published_at = CASE WHEN $5 THEN COALESCE($6, published_at, $7) ELSE NULL END,
			updated_at = $7
		WHERE id = $8
		RETURNING created_at, published_at`

	post.UpdatedAt = time.Now().UTC()

	err := s.db.QueryRowxContext(ctx, query,
		post.Title, post.Content, post.Excerpt, post.Slug,
		post.Published, post.PublishedAt, post.UpdatedAt, post.ID,
	).Scan(&post.CreatedAt, &post.PublishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBlogPostNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrSlugTaken
		}
		s.logger.ErrorContext(ctx, "Failed to update blog post in DB", slog.String("postID", post.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	s.logger.InfoContext(ctx, "Blog post updated in DB", slog.String("postID", post.ID))
	return nil
}

func (s *PostgresBlogStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete blog post from DB", slog.String("postID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrBlogPostNotFound
	}
	s.logger.InfoContext(ctx, "Blog post deleted from DB", slog.String("postID", id))
	return nil
}

func (s *PostgresBlogStore) SetPublished(ctx context.Context, id string, published bool) (*domain.BlogPost, error) {
	now := time.Now().UTC()
	var publishedAt *time.Time
	if published {
		publishedAt = &now
	}

	query := `UPDATE blog_posts SET published = $1, published_at = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + blogPostColumns

	var post domain.BlogPost
	err := s.db.GetContext(ctx, &post, query, published, publishedAt, now, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlogPostNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to set blog post published state", slog.String("postID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to set blog post published state: %w", err)
	}
	s.logger.InfoContext(ctx, "Blog post published state updated", slog.String("postID", id), slog.Bool("published", published))
	return &post, nil
}

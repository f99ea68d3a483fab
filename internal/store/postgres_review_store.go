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

const reviewColumns = `id, content_id, title, description, score, reviewer, external_url, review_image, published_at, created_at, updated_at`

// PostgresReviewStore implements ReviewStore for PostgreSQL.
type PostgresReviewStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresReviewStore(db *sqlx.DB, logger *slog.Logger) (*PostgresReviewStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresReviewStore{db: db, logger: logger}, nil
}

func (s *PostgresReviewStore) List(ctx context.Context, limit int) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY published_at LIMIT $1`

	reviews := []*domain.Review{}
	if err := s.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *PostgresReviewStore) ListAll(ctx context.Context) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY published_at`

	reviews := []*domain.Review{}
	if err := s.db.SelectContext(ctx, &reviews, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list all reviews from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list all reviews: %w", err)
	}
	return reviews, nil
}

func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (id, content_id, title, description, score, reviewer, external_url, review_image, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt

	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.ContentID, review.Title, review.Description, review.Score,
		review.Reviewer, review.ExternalURL, review.ReviewImage, review.PublishedAt,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			s.logger.WarnContext(ctx, "Review references missing content", slog.Any("contentID", review.ContentID))
			return ErrContentNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to create review in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create review: %w", err)
	}
	s.logger.InfoContext(ctx, "Review created in DB", slog.String("reviewID", review.ID))
	return nil
}

func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET content_id = $1, title = $2, description = $3, score = $4,
			reviewer = $5, external_url = $6, review_image = $7, published_at = $8, updated_at = $9
		WHERE id = $10
		RETURNING created_at`

	review.UpdatedAt = time.Now().UTC()

	err := s.db.QueryRowxContext(ctx, query,
		review.ContentID, review.Title, review.Description, review.Score, review.Reviewer,
		review.ExternalURL, review.ReviewImage, review.PublishedAt, review.UpdatedAt, review.ID,
	).Scan(&review.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to update review in DB", slog.String("reviewID", review.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update review: %w", err)
	}
	s.logger.InfoContext(ctx, "Review updated in DB", slog.String("reviewID", review.ID))
	return nil
}

func (s *PostgresReviewStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete review from DB", slog.String("reviewID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete review: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	s.logger.InfoContext(ctx, "Review deleted from DB", slog.String("reviewID", id))
	return nil
}

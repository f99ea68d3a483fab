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

const ratingColumns = `id, content_id, user_id, rating, review, created_at, updated_at`

// PostgresRatingStore implements RatingStore for PostgreSQL.
type PostgresRatingStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresRatingStore(db *sqlx.DB, logger *slog.Logger) (*PostgresRatingStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresRatingStore{db: db, logger: logger}, nil
}

func (s *PostgresRatingStore) GetByUserAndContent(ctx context.Context, userID, contentID string) (*domain.UserRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM user_ratings WHERE user_id = $1 AND content_id = $2`

	var rating domain.UserRating
	err := s.db.GetContext(ctx, &rating, query, userID, contentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get rating by user and content", slog.String("userID", userID), slog.String("contentID", contentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

func (s *PostgresRatingStore) Create(ctx context.Context, rating *domain.UserRating) error {
	query := `INSERT INTO user_ratings (id, content_id, user_id, rating, review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	rating.CreatedAt = time.Now().UTC()
	rating.UpdatedAt = rating.CreatedAt

	_, err := s.db.ExecContext(ctx, query,
		rating.ID, rating.ContentID, rating.UserID, rating.Rating, rating.Review,
		rating.CreatedAt, rating.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			s.logger.WarnContext(ctx, "Rating references missing content", slog.String("contentID", rating.ContentID))
			return ErrContentNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to create rating in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create rating: %w", err)
	}
	s.logger.InfoContext(ctx, "Rating created in DB", slog.String("ratingID", rating.ID), slog.String("contentID", rating.ContentID))
	return nil
}

func (s *PostgresRatingStore) Update(ctx context.Context, id, userID string, rating *float64, review *string) (*domain.UserRating, error) {
	// COALESCE keeps columns whose new value is nil. The user_id predicate is
	// the ownership check: foreign rows fall through to ErrRatingNotFound.
	query := `UPDATE user_ratings
		SET rating = COALESCE($1, rating), review = COALESCE($2, review), updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING ` + ratingColumns

	var updated domain.UserRating
	err := s.db.GetContext(ctx, &updated, query, rating, review, time.Now().UTC(), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to update rating in DB", slog.String("ratingID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}
	return &updated, nil
}

func (s *PostgresRatingStore) Delete(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_ratings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete rating from DB", slog.String("ratingID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrRatingNotFound
	}
	s.logger.InfoContext(ctx, "Rating deleted from DB", slog.String("ratingID", id))
	return nil
}

// userRatingContentRow is the flat scan target for the rating/content join.
type userRatingContentRow struct {
	domain.UserRating
	SummaryID          *string `db:"summary_id"`
	SummaryTitle       *string `db:"summary_title"`
	SummaryContentType *string `db:"summary_content_type"`
}

func (s *PostgresRatingStore) ListByUser(ctx context.Context, userID string) ([]*domain.UserRatingWithContent, error) {
	query := `SELECT r.id, r.content_id, r.user_id, r.rating, r.review, r.created_at, r.updated_at,
			c.id AS summary_id, c.title AS summary_title, c.content_type AS summary_content_type
		FROM user_ratings r
		LEFT JOIN content c ON c.id = r.content_id
		WHERE r.user_id = $1
		ORDER BY r.created_at`

	rows := []userRatingContentRow{}
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list ratings by user from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list ratings by user: %w", err)
	}

	ratings := make([]*domain.UserRatingWithContent, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, &domain.UserRatingWithContent{
			UserRating: row.UserRating,
			Content: domain.ContentSummary{
				ID:          row.SummaryID,
				Title:       row.SummaryTitle,
				ContentType: row.SummaryContentType,
			},
		})
	}
	return ratings, nil
}

func (s *PostgresRatingStore) ListByContent(ctx context.Context, contentID string) ([]*domain.UserRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM user_ratings WHERE content_id = $1 ORDER BY created_at`

	ratings := []*domain.UserRating{}
	if err := s.db.SelectContext(ctx, &ratings, query, contentID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list ratings by content from DB", slog.String("contentID", contentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list ratings by content: %w", err)
	}
	return ratings, nil
}

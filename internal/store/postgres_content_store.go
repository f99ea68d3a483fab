package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

const contentColumns = `id, title, content_type, runtime, release_date, rating, synopsis, genre,
	poster_image, trailer_url, streaming_url, streaming_platform, other_platform,
	space_url, podcast_links, is_movie_of_the_week, created_at, updated_at`

// contentColumnsWithAvg selects the same columns off alias c plus the
// aggregated average user rating.
const contentColumnsWithAvg = `c.id, c.title, c.content_type, c.runtime, c.release_date, c.rating, c.synopsis, c.genre,
	c.poster_image, c.trailer_url, c.streaming_url, c.streaming_platform, c.other_platform,
	c.space_url, c.podcast_links, c.is_movie_of_the_week, c.created_at, c.updated_at,
	AVG(r.rating) AS user_rating`

// PostgresContentStore implements ContentStore for PostgreSQL.
type PostgresContentStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresContentStore(db *sqlx.DB, logger *slog.Logger) (*PostgresContentStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresContentStore{db: db, logger: logger}, nil
}

func (s *PostgresContentStore) GetFeatured(ctx context.Context) (*domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE is_movie_of_the_week = TRUE ORDER BY id LIMIT 1`

	var content domain.Content
	err := s.db.GetContext(ctx, &content, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Failed to get featured content from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get featured content: %w", err)
	}
	return &content, nil
}

func (s *PostgresContentStore) ListOthers(ctx context.Context, limit int) ([]*domain.Content, error) {
	query := `SELECT ` + contentColumnsWithAvg + `
		FROM content c
		LEFT JOIN user_ratings r ON r.content_id = c.id
		WHERE c.is_movie_of_the_week = FALSE
		GROUP BY c.id
		ORDER BY c.created_at
		LIMIT $1`

	contents := []*domain.Content{}
	if err := s.db.SelectContext(ctx, &contents, query, limit); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list non-featured content from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	return contents, nil
}

func (s *PostgresContentStore) GetByID(ctx context.Context, id string) (*domain.Content, error) {
	query := `SELECT ` + contentColumnsWithAvg + `
		FROM content c
		LEFT JOIN user_ratings r ON r.content_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`

	var content domain.Content
	err := s.db.GetContext(ctx, &content, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get content by ID from DB", slog.String("contentID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get content by ID: %w", err)
	}
	return &content, nil
}

func (s *PostgresContentStore) ListAll(ctx context.Context) ([]*domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content ORDER BY created_at`

	contents := []*domain.Content{}
	if err := s.db.SelectContext(ctx, &contents, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list all content from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list all content: %w", err)
	}
	return contents, nil
}

func (s *PostgresContentStore) Create(ctx context.Context, content *domain.Content) error {
	query := `INSERT INTO content (id, title, content_type, runtime, release_date, rating, synopsis, genre,
			poster_image, trailer_url, streaming_url, streaming_platform, other_platform,
			space_url, podcast_links, is_movie_of_the_week, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	content.CreatedAt = time.Now().UTC()
	content.UpdatedAt = content.CreatedAt

	_, err := s.db.ExecContext(ctx, query,
		content.ID, content.Title, content.ContentType, content.Runtime, content.ReleaseDate,
		content.Rating, content.Synopsis, content.Genre, content.PosterImage, content.TrailerURL,
		content.StreamingURL, content.StreamingPlatform, content.OtherPlatform, content.SpaceURL,
		content.PodcastLinks, content.IsMovieOfTheWeek, content.CreatedAt, content.UpdatedAt,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create content in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create content: %w", err)
	}
	s.logger.InfoContext(ctx, "Content created in DB", slog.String("contentID", content.ID))
	return nil
}

func (s *PostgresContentStore) Update(ctx context.Context, content *domain.Content) error {
	query := `UPDATE content SET title = $1, content_type = $2, runtime = $3, release_date = $4,
			rating = $5, synopsis = $6, genre = $7, poster_image = $8, trailer_url = $9,
			streaming_url = $10, streaming_platform = $11, other_platform = $12, space_url = $13,
			podcast_links = $14, is_movie_of_the_week = $15, updated_at = $16
		WHERE id = $17
		RETURNING created_at`

	content.UpdatedAt = time.Now().UTC()

	err := s.db.QueryRowxContext(ctx, query,
		content.Title, content.ContentType, content.Runtime, content.ReleaseDate, content.Rating,
		content.Synopsis, content.Genre, content.PosterImage, content.TrailerURL, content.StreamingURL,
		content.StreamingPlatform, content.OtherPlatform, content.SpaceURL, content.PodcastLinks,
		content.IsMovieOfTheWeek, content.UpdatedAt, content.ID,
	).Scan(&content.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContentNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to update content in DB", slog.String("contentID", content.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update content: %w", err)
	}
	s.logger.InfoContext(ctx, "Content updated in DB", slog.String("contentID", content.ID))
	return nil
}

func (s *PostgresContentStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete content from DB", slog.String("contentID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete content: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrContentNotFound
	}
	s.logger.InfoContext(ctx, "Content deleted from DB", slog.String("contentID", id))
	return nil
}

// SetFeatured runs the clear-then-set sequence inside one transaction so a
// reader never observes two featured rows and two concurrent calls cannot
// both leave their target flagged.
func (s *PostgresContentStore) SetFeatured(ctx context.Context, id string, featured bool) (*domain.Content, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	if featured {
		_, err = tx.ExecContext(ctx,
			`UPDATE content SET is_movie_of_the_week = FALSE, updated_at = $1 WHERE is_movie_of_the_week = TRUE AND id <> $2`,
			now, id)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to clear featured flag", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to clear featured flag: %w", err)
		}
	}

	var content domain.Content
	err = tx.GetContext(ctx, &content,
		`UPDATE content SET is_movie_of_the_week = $1, updated_at = $2 WHERE id = $3 RETURNING `+contentColumns,
		featured, now, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to set featured flag", slog.String("contentID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to set featured flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit featured flag change: %w", err)
	}
	s.logger.InfoContext(ctx, "Featured flag updated", slog.String("contentID", id), slog.Bool("featured", featured))
	return &content, nil
}

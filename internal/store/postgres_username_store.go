package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

// PostgresUsernameStore implements UsernameStore for PostgreSQL.
type PostgresUsernameStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresUsernameStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUsernameStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresUsernameStore{db: db, logger: logger}, nil
}

func (s *PostgresUsernameStore) IsTaken(ctx context.Context, username string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM usernames WHERE LOWER(username) = LOWER($1)`, username)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check username availability", slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return count > 0, nil
}

func (s *PostgresUsernameStore) Reserve(ctx context.Context, reservation *domain.UsernameReservation) error {
	reservation.Username = strings.ToLower(reservation.Username)
	reservation.CreatedAt = time.Now().UTC()

	query := `INSERT INTO usernames (id, stack_user_id, username, created_at) VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query,
		reservation.ID, reservation.StackUserID, reservation.Username, reservation.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			// Which key collided decides the conflict reported to the caller.
			if pqErr.Constraint == "usernames_stack_user_id_key" {
				s.logger.WarnContext(ctx, "User already has a username", slog.String("stackUserID", reservation.StackUserID))
				return ErrUserHasUsername
			}
			s.logger.WarnContext(ctx, "Username already taken", slog.String("username", reservation.Username))
			return ErrUsernameTaken
		}
		s.logger.ErrorContext(ctx, "Failed to reserve username in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to reserve username: %w", err)
	}
	s.logger.InfoContext(ctx, "Username reserved", slog.String("username", reservation.Username), slog.String("stackUserID", reservation.StackUserID))
	return nil
}

package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

func newMockUsernameStore(t *testing.T) (*PostgresUsernameStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewPostgresUsernameStore(sqlx.NewDb(db, "sqlmock"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store, mock
}

func TestIsTakenComparesCaseInsensitively(t *testing.T) {
	store, mock := newMockUsernameStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM usernames WHERE LOWER\(username\) = LOWER\(\$1\)`).
		WithArgs("FilmFan").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := store.IsTaken(context.Background(), "FilmFan")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveLowercasesBeforePersisting(t *testing.T) {
	store, mock := newMockUsernameStore(t)

	mock.ExpectExec(`INSERT INTO usernames`).
		WithArgs("res-1", "user-1", "filmfan", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reservation := &domain.UsernameReservation{ID: "res-1", StackUserID: "user-1", Username: "FilmFan"}
	require.NoError(t, store.Reserve(context.Background(), reservation))
	assert.Equal(t, "filmfan", reservation.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveMapsUniqueViolationsByConstraint(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{"user already has a handle", "usernames_stack_user_id_key", ErrUserHasUsername},
		{"handle held by someone else", "usernames_username_lower_idx", ErrUsernameTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, mock := newMockUsernameStore(t)

			mock.ExpectExec(`INSERT INTO usernames`).
				WillReturnError(&pq.Error{Code: "23505", Constraint: tc.constraint})

			err := store.Reserve(context.Background(), &domain.UsernameReservation{
				ID: "res-1", StackUserID: "user-1", Username: "filmfan",
			})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

package store

import (
	"context"
	"errors"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

var (
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrUserHasUsername = errors.New("user already has a username")
)

// UsernameStore defines the data operations for handle reservations.
// Usernames are compared case-insensitively; callers pass the handle as
// typed and the store lowercases before persisting.
type UsernameStore interface {
	IsTaken(ctx context.Context, username string) (bool, error)
	// Reserve claims a handle for an external user. ErrUsernameTaken when
	// another user holds the handle (any casing), ErrUserHasUsername when
	// this user already reserved one.
	Reserve(ctx context.Context, reservation *domain.UsernameReservation) error
}

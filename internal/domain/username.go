package domain

import (
	"regexp"
	"time"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

// UsernameValidationMessage explains the username format to callers.
const UsernameValidationMessage = "Username must be 3-20 characters long and contain only letters, numbers, underscores, and hyphens"

// UsernameReservation maps an external identity to a unique handle.
// Usernames are stored lowercased so uniqueness is case-insensitive.
type UsernameReservation struct {
	ID          string    `json:"id" db:"id"`
	StackUserID string    `json:"stackUserId" db:"stack_user_id"`
	Username    string    `json:"username" db:"username"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// IsValidUsername reports whether s satisfies the username format.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// CheckUsernameRequest is the body for the availability check.
type CheckUsernameRequest struct {
	Username string `json:"username"`
}

// ReserveUsernameRequest is the body for claiming a handle.
type ReserveUsernameRequest struct {
	Username string `json:"username"`
}

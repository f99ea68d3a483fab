package domain

import (
	"time"
)

// The canonical user rating scale. The club rates titles on a five point
// scale with one decimal of precision; every write path validates against
// these bounds.
const (
	RatingScaleMin = 1.0
	RatingScaleMax = 5.0
)

// UserRating is one member's opinion of one title. At most one row exists
// per (ContentID, UserID) pair; resubmissions update the existing row.
type UserRating struct {
	ID        string    `json:"id" db:"id"`
	ContentID string    `json:"contentId" db:"content_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Rating    float64   `json:"rating" db:"rating"`
	Review    *string   `json:"review" db:"review"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Display fields resolved from the identity provider, never stored.
	Username     string `json:"username,omitempty" db:"-"`
	ProfileImage string `json:"profileImage,omitempty" db:"-"`
}

// ContentSummary is the slice of a title attached to a member's rating list.
type ContentSummary struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	ContentType *string `json:"contentType"`
}

// UserRatingWithContent pairs a rating with a summary of the rated title.
type UserRatingWithContent struct {
	UserRating
	Content ContentSummary `json:"content"`
}

// SubmitRatingRequest is the body for submitting or resubmitting a rating.
// The validate tags must agree with RatingScaleMin/RatingScaleMax.
type SubmitRatingRequest struct {
	ContentID string   `json:"contentId" validate:"required,uuid"`
	Rating    *float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Review    string   `json:"review" validate:"omitempty,max=2000"`
}

// UpdateRatingRequest is the body for the owner-scoped PUT; nil fields are
// left unchanged.
type UpdateRatingRequest struct {
	Rating *float64 `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Review *string  `json:"review" validate:"omitempty,max=2000"`
}

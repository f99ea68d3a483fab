package domain

import (
	"time"
)

// Review is an editorial or external critique of a title, managed entirely
// by admins. Distinct from UserRating.
type Review struct {
	ID          string     `json:"id" db:"id"`
	ContentID   *string    `json:"contentId" db:"content_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Score       *float64   `json:"score" db:"score"`
	Reviewer    string     `json:"reviewer" db:"reviewer"`
	ExternalURL *string    `json:"externalUrl" db:"external_url"`
	ReviewImage *string    `json:"reviewImage" db:"review_image"`
	PublishedAt *time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// CreateReviewRequest is the body for creating an editorial review.
// Score is capped at 9.9, the ceiling of the NUMERIC(2,1) column.
type CreateReviewRequest struct {
	ContentID   *string    `json:"contentId" validate:"omitempty,uuid"`
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"required"`
	Score       *float64   `json:"score" validate:"omitempty,gte=0,lte=9.9"`
	Reviewer    string     `json:"reviewer" validate:"required,min=1,max=100"`
	ExternalURL *string    `json:"externalUrl" validate:"omitempty,url"`
	ReviewImage *string    `json:"reviewImage"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// UpdateReviewRequest carries the full replacement record for a review.
type UpdateReviewRequest = CreateReviewRequest

package domain

import (
	"regexp"
	"strings"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// BlogPost is an editorial article, independent of any title.
// PublishedAt is meaningful only while Published is true.
type BlogPost struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Content     string     `json:"content" db:"content"`
	Excerpt     *string    `json:"excerpt" db:"excerpt"`
	Slug        string     `json:"slug" db:"slug"`
	Published   bool       `json:"published" db:"published"`
	PublishedAt *time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Slugify derives a URL-safe slug from a post title: lowercase, runs of
// anything outside [a-z0-9] collapsed into single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is an acceptable URL slug.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// CreateBlogPostRequest is the body for creating a post. An empty Slug is
// derived from the title; a supplied one must already be URL-safe. An
// omitted PublishedAt on a published post keeps the stored timestamp (or
// stamps now on first publication).
type CreateBlogPostRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Content     string     `json:"content" validate:"required"`
	Excerpt     *string    `json:"excerpt"`
	Slug        string     `json:"slug"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// UpdateBlogPostRequest carries the full replacement record for a post.
type UpdateBlogPostRequest = CreateBlogPostRequest

// SetPublishedRequest toggles a post's published flag.
type SetPublishedRequest struct {
	Published bool `json:"published"`
}

package domain

import (
	"time"

	"github.com/lib/pq"
)

// ContentType distinguishes the two kinds of titles the club covers.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeTVShow ContentType = "tv_show"
)

// Classification ratings accepted for content, mirroring the content_rating
// enum in the database.
var ContentRatings = []string{"G", "PG", "PG-13", "R", "NC-17", "TV-Y", "TV-Y7", "TV-G", "TV-PG", "TV-14", "TV-MA"}

// Streaming platforms accepted for content. "other" requires OtherPlatform
// to carry the platform name.
var StreamingPlatforms = []string{"netflix", "prime_video", "disney_plus", "hulu", "hbo_max", "apple_tv", "paramount_plus", "peacock", "other"}

// Content is a movie or TV show covered by the club.
type Content struct {
	ID                string         `json:"id" db:"id"`
	Title             string         `json:"title" db:"title"`
	ContentType       ContentType    `json:"contentType" db:"content_type"`
	Runtime           *int           `json:"runtime" db:"runtime"` // minutes
	ReleaseDate       *time.Time     `json:"releaseDate" db:"release_date"`
	Rating            *string        `json:"rating" db:"rating"`
	Synopsis          *string        `json:"synopsis" db:"synopsis"`
	Genre             pq.StringArray `json:"genre" db:"genre"`
	PosterImage       *string        `json:"posterImage" db:"poster_image"`
	TrailerURL        *string        `json:"trailerUrl" db:"trailer_url"`
	StreamingURL      *string        `json:"streamingUrl" db:"streaming_url"`
	StreamingPlatform *string        `json:"streamingPlatform" db:"streaming_platform"`
	OtherPlatform     *string        `json:"otherPlatform" db:"other_platform"`
	SpaceURL          *string        `json:"spaceUrl" db:"space_url"`
	PodcastLinks      pq.StringArray `json:"podcastLinks" db:"podcast_links"`
	IsMovieOfTheWeek  bool           `json:"isMovieOfTheWeek" db:"is_movie_of_the_week"`
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time      `json:"updatedAt" db:"updated_at"`

	// UserRating is the arithmetic mean of the user ratings for this title.
	// Derived by the read queries, never stored. Nil when no ratings exist.
	UserRating *float64 `json:"userRating" db:"user_rating"`
}

// CreateContentRequest is the body for creating a title. Only Title and
// ContentType are mandatory; enum fields are rejected when outside the
// closed lists above.
type CreateContentRequest struct {
	Title             string     `json:"title" validate:"required,min=1,max=255"`
	ContentType       string     `json:"contentType" validate:"required,oneof=movie tv_show"`
	Runtime           *int       `json:"runtime" validate:"omitempty,gte=0"`
	ReleaseDate       *time.Time `json:"releaseDate"`
	Rating            *string    `json:"rating" validate:"omitempty,oneof=G PG PG-13 R NC-17 TV-Y TV-Y7 TV-G TV-PG TV-14 TV-MA"`
	Synopsis          *string    `json:"synopsis"`
	Genre             []string   `json:"genre"`
	PosterImage       *string    `json:"posterImage"`
	TrailerURL        *string    `json:"trailerUrl" validate:"omitempty,url"`
	StreamingURL      *string    `json:"streamingUrl" validate:"omitempty,url"`
	StreamingPlatform *string    `json:"streamingPlatform" validate:"omitempty,oneof=netflix prime_video disney_plus hulu hbo_max apple_tv paramount_plus peacock other"`
	OtherPlatform     *string    `json:"otherPlatform" validate:"required_if=StreamingPlatform other"`
	SpaceURL          *string    `json:"spaceUrl" validate:"omitempty,url"`
	PodcastLinks      []string   `json:"podcastLinks" validate:"omitempty,dive,url"`
	// IsMovieOfTheWeek is written as given on create/replace. Only the
	// dedicated featured endpoint clears the flag from other titles, so
	// that route is the exclusivity-safe way to feature a title.
	IsMovieOfTheWeek bool       `json:"isMovieOfTheWeek"`
}

// UpdateContentRequest carries the full replacement record for a title.
// Updates are replace, not patch: omitted optional fields become null.
type UpdateContentRequest = CreateContentRequest

// SetFeaturedRequest toggles the movie-of-the-week flag.
type SetFeaturedRequest struct {
	IsMovieOfTheWeek bool `json:"isMovieOfTheWeek"`
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orunto/nollywood-film-club/internal/domain"
	"github.com/orunto/nollywood-film-club/internal/identity"
	"github.com/orunto/nollywood-film-club/internal/store"
)

const (
	adminToken      = "admin-token"
	userToken       = "user-token"
	secondUserToken = "second-user-token"
)

// stubGate maps fixed tokens onto callers, replacing the JWT verification
// path in handler tests.
type stubGate struct{}

func (stubGate) CurrentCaller(_ context.Context, token string) (*identity.Caller, error) {
	switch token {
	case adminToken:
		return &identity.Caller{ID: "admin-1", Role: identity.RoleAdmin}, nil
	case userToken:
		return &identity.Caller{ID: "user-1", Role: "user"}, nil
	case secondUserToken:
		return &identity.Caller{ID: "user-2", Role: "user"}, nil
	}
	return nil, errors.New("unknown token")
}

// stubDisplay resolves a fixed set of users and falls back like the real
// provider does.
type stubDisplay struct{}

func (stubDisplay) ResolveDisplay(_ context.Context, userID string) identity.Display {
	if userID == "user-1" {
		return identity.Display{Username: "filmfan", ProfileImage: "https://img.example/filmfan.png"}
	}
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	return identity.Display{Username: "User " + short}
}

func newTestServer(t *testing.T) (*store.Memory, http.Handler) {
	t.Helper()

	mem := store.NewMemory()
	handler := NewHandler(Stores{
		Content:   mem.Content,
		Ratings:   mem.Ratings,
		Reviews:   mem.Reviews,
		Blog:      mem.Blog,
		Usernames: mem.Usernames,
	}, stubGate{}, stubDisplay{}, slog.New(slog.NewTextHandler(io.Discard, nil)), validator.New())
	return mem, NewRouter(handler)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func seedContent(t *testing.T, mem *store.Memory, id, title string) {
	t.Helper()

	err := mem.Content.Create(context.Background(), &domain.Content{
		ID:          id,
		Title:       title,
		ContentType: domain.ContentTypeMovie,
	})
	require.NoError(t, err)
}

func seedRating(t *testing.T, mem *store.Memory, id, contentID, userID string, rating float64) {
	t.Helper()

	err := mem.Ratings.Create(context.Background(), &domain.UserRating{
		ID:        id,
		ContentID: contentID,
		UserID:    userID,
		Rating:    rating,
	})
	require.NoError(t, err)
}

func TestContentLifecycle(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/content", adminToken, map[string]interface{}{
		"title":       "Anikulapo",
		"contentType": "movie",
		"genre":       []string{"drama"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Content created successfully", body["message"])
	contentID := body["data"].(map[string]interface{})["id"].(string)

	rec = doRequest(t, router, http.MethodGet, "/api/content/"+contentID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Anikulapo", data["title"])
	assert.Nil(t, data["userRating"], "fresh content should have a null average")

	rec = doRequest(t, router, http.MethodPut, "/api/content/"+contentID, adminToken, map[string]interface{}{
		"title":       "Anikulapo: Rise of the Spectre",
		"contentType": "movie",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/content/"+contentID, "", nil)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Anikulapo: Rise of the Spectre", data["title"])
	assert.Nil(t, data["genre"], "replace semantics: omitted fields reset")

	rec = doRequest(t, router, http.MethodDelete, "/api/content/"+contentID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Content deleted successfully", decodeBody(t, rec)["message"])

	rec = doRequest(t, router, http.MethodGet, "/api/content/"+contentID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Content not found", decodeBody(t, rec)["error"])
}

func TestFeaturedExclusivity(t *testing.T) {
	mem, router := newTestServer(t)
	seedContent(t, mem, "c1", "First Pick")
	seedContent(t, mem, "c2", "Second Pick")

	rec := doRequest(t, router, http.MethodPatch, "/api/content/c1/featured", adminToken,
		map[string]interface{}{"isMovieOfTheWeek": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Content set as movie of the week", decodeBody(t, rec)["message"])

	// Featuring another title must clear the first.
	rec = doRequest(t, router, http.MethodPatch, "/api/content/c2/featured", adminToken,
		map[string]interface{}{"isMovieOfTheWeek": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/content/featured", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	featured := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "c2", featured["id"])

	all, err := mem.Content.ListAll(context.Background())
	require.NoError(t, err)
	flagged := 0
	for _, c := range all {
		if c.IsMovieOfTheWeek {
			flagged++
		}
	}
	assert.Equal(t, 1, flagged)

	rec = doRequest(t, router, http.MethodPatch, "/api/content/c2/featured", adminToken,
		map[string]interface{}{"isMovieOfTheWeek": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Content removed from movie of the week", decodeBody(t, rec)["message"])

	rec = doRequest(t, router, http.MethodGet, "/api/content/featured", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["data"], "no featured title should serialize as data: null")
}

func TestListContentExcludesFeatured(t *testing.T) {
	mem, router := newTestServer(t)
	seedContent(t, mem, "c1", "Featured Pick")
	seedContent(t, mem, "c2", "Regular Pick")
	_, err := mem.Content.SetFeatured(context.Background(), "c1", true)
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodGet, "/api/content", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "c2", data[0].(map[string]interface{})["id"])
}

func TestSubmitRatingUpserts(t *testing.T) {
	mem, router := newTestServer(t)
	seedContent(t, mem, "11111111-1111-1111-1111-111111111111", "Rated Title")
	contentID := "11111111-1111-1111-1111-111111111111"

	rec := doRequest(t, router, http.MethodPost, "/api/user-ratings", userToken, map[string]interface{}{
		"contentId": contentID,
		"rating":    5,
		"review":    "A triumph",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Rating submitted successfully", decodeBody(t, rec)["message"])

	// Resubmission updates in place; an empty review leaves the old text.
	rec = doRequest(t, router, http.MethodPost, "/api/user-ratings", userToken, map[string]interface{}{
		"contentId": contentID,
		"rating":    3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rating updated successfully", decodeBody(t, rec)["message"])

	ratings, err := mem.Ratings.ListByContent(context.Background(), contentID)
	require.NoError(t, err)
	require.Len(t, ratings, 1, "resubmission must not create a second row")
	assert.Equal(t, 3.0, ratings[0].Rating)
	require.NotNil(t, ratings[0].Review)
	assert.Equal(t, "A triumph", *ratings[0].Review)
}

func TestSubmitRatingForMissingContent(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/user-ratings", userToken, map[string]interface{}{
		"contentId": "22222222-2222-2222-2222-222222222222",
		"rating":    4,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Content not found", decodeBody(t, rec)["error"])
}

func TestSubmitRatingRejectsOutOfScaleValues(t *testing.T) {
	mem, router := newTestServer(t)
	seedContent(t, mem, "11111111-1111-1111-1111-111111111111", "Rated Title")

	for _, rating := range []float64{0, 0.5, 5.5, 6} {
		rec := doRequest(t, router, http.MethodPost, "/api/user-ratings", userToken, map[string]interface{}{
			"contentId": "11111111-1111-1111-1111-111111111111",
			"rating":    rating,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %v should be rejected", rating)
	}
}

func TestAverageRating(t *testing.T) {
	mem, router := newTestServer(t)
	seedContent(t, mem, "c1", "Rated Title")
	seedRating(t, mem, "r1", "c1", "user-1", 5)
	seedRating(t, mem, "r2", "c1", "user-2", 4)
	seedRating(t, mem, "r3", "c1", "user-3", 3)

	rec := doRequest(t, router, http.MethodGet, "/api/content/c1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 4.0, data["userRating"])
}

func TestRatingMutationsAreOwnerScoped(t *testing.T) {
	mem, router := newTestServer(t)
	seedContent(t, mem, "c1", "Rated Title")
	seedRating(t, mem, "r1", "c1", "user-1", 5)

	rec := doRequest(t, router, http.MethodPut, "/api/user-ratings/r1", secondUserToken,
		map[string]interface{}{"rating": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Rating not found or access denied", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodDelete, "/api/user-ratings/r1", secondUserToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The owner can still see and remove it.
	rec = doRequest(t, router, http.MethodPut, "/api/user-ratings/r1", userToken,
		map[string]interface{}{"rating": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/user-ratings/r1", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ratings, err := mem.Ratings.ListByContent(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, ratings)
}

func TestListOwnRatingsIncludesContentSummary(t *testing.T) {
	mem, router := newTestServer(t)
	seedContent(t, mem, "c1", "Rated Title")
	seedRating(t, mem, "r1", "c1", "user-1", 4)
	seedRating(t, mem, "r2", "c1", "user-2", 2)

	rec := doRequest(t, router, http.MethodGet, "/api/user-ratings", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]interface{})
	require.Len(t, data, 1, "only the caller's own ratings")

	entry := data[0].(map[string]interface{})
	content := entry["content"].(map[string]interface{})
	assert.Equal(t, "c1", content["id"])
	assert.Equal(t, "Rated Title", content["title"])
	assert.Equal(t, "movie", content["contentType"])
}

func TestListContentRatingsResolvesDisplayIdentities(t *testing.T) {
	mem, router := newTestServer(t)
	seedContent(t, mem, "c1", "Rated Title")
	seedRating(t, mem, "r1", "c1", "user-1", 5)
	seedRating(t, mem, "r2", "c1", "anonymous-user-id", 3)

	rec := doRequest(t, router, http.MethodGet, "/api/content/c1/ratings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]interface{})
	require.Len(t, data, 2)

	first := data[0].(map[string]interface{})
	assert.Equal(t, "filmfan", first["username"])
	second := data[1].(map[string]interface{})
	assert.Equal(t, "User anonymou", second["username"], "unresolvable users get the placeholder")
}

func TestCascadeDelete(t *testing.T) {
	mem, router := newTestServer(t)
	ctx := context.Background()
	seedContent(t, mem, "c1", "Doomed Title")
	seedRating(t, mem, "r1", "c1", "user-1", 4)

	contentID := "c1"
	require.NoError(t, mem.Reviews.Create(ctx, &domain.Review{
		ID: "rv1", ContentID: &contentID, Title: "Linked Review", Description: "d", Reviewer: "critic",
	}))

	rec := doRequest(t, router, http.MethodDelete, "/api/content/c1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ratings, err := mem.Ratings.ListByContent(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, ratings, "ratings must go with their content")

	reviews, err := mem.Reviews.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews, "linked reviews must go with their content")
}

func TestListReviewsOrderedOldestFirst(t *testing.T) {
	mem, router := newTestServer(t)
	ctx := context.Background()

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, mem.Reviews.Create(ctx, &domain.Review{
		ID: "rv-new", Title: "Newer Review", Description: "d", Reviewer: "critic", PublishedAt: &newer,
	}))
	require.NoError(t, mem.Reviews.Create(ctx, &domain.Review{
		ID: "rv-old", Title: "Older Review", Description: "d", Reviewer: "critic", PublishedAt: &older,
	}))

	rec := doRequest(t, router, http.MethodGet, "/api/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Older Review", data[0].(map[string]interface{})["title"])
	assert.Equal(t, "Newer Review", data[1].(map[string]interface{})["title"])
}

func TestHomepageAggregatesSections(t *testing.T) {
	mem, router := newTestServer(t)
	ctx := context.Background()
	seedContent(t, mem, "c1", "Feature")
	seedContent(t, mem, "c2", "Past Space")
	_, err := mem.Content.SetFeatured(ctx, "c1", true)
	require.NoError(t, err)
	require.NoError(t, mem.Reviews.Create(ctx, &domain.Review{
		ID: "rv1", Title: "A Review", Description: "d", Reviewer: "critic",
	}))

	rec := doRequest(t, router, http.MethodGet, "/api/homepage", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})

	assert.Equal(t, "c1", data["movieOfTheWeek"].(map[string]interface{})["id"])
	assert.Len(t, data["pastSpaces"].([]interface{}), 1)
	assert.Len(t, data["reviews"].([]interface{}), 1)
}

func TestHomepageWithNoFeaturedTitle(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/homepage", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Nil(t, data["movieOfTheWeek"])
	assert.Empty(t, data["pastSpaces"])
	assert.Empty(t, data["reviews"])
}

func TestUsernameFlow(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/usernames/check", "",
		map[string]interface{}{"username": "ab"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, domain.UsernameValidationMessage, body["message"])

	rec = doRequest(t, router, http.MethodPost, "/api/usernames/check", "",
		map[string]interface{}{"username": "FilmFan"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["available"])

	rec = doRequest(t, router, http.MethodPost, "/api/usernames", userToken,
		map[string]interface{}{"username": "FilmFan"})
	require.Equal(t, http.StatusCreated, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "filmfan", body["username"], "handles are stored lowercased")

	// Uniqueness is case-insensitive.
	rec = doRequest(t, router, http.MethodPost, "/api/usernames/check", "",
		map[string]interface{}{"username": "FILMFAN"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["available"])

	rec = doRequest(t, router, http.MethodPost, "/api/usernames", secondUserToken,
		map[string]interface{}{"username": "FILMFAN"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username is already taken", decodeBody(t, rec)["error"])

	// One handle per user.
	rec = doRequest(t, router, http.MethodPost, "/api/usernames", userToken,
		map[string]interface{}{"username": "another_name"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already has a username", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodPost, "/api/usernames", "",
		map[string]interface{}{"username": "ghost"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBlogPostLifecycle(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/blog-posts", adminToken, map[string]interface{}{
		"title":   "Hello Nollywood World",
		"content": "First post.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	post := body["data"].(map[string]interface{})
	postID := post["id"].(string)
	assert.Equal(t, "hello-nollywood-world", post["slug"], "slug derived from title")
	assert.Equal(t, false, post["published"])

	// Same derived slug collides.
	rec = doRequest(t, router, http.MethodPost, "/api/blog-posts", adminToken, map[string]interface{}{
		"title":   "Hello Nollywood World",
		"content": "Duplicate.",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, "/api/blog-posts/"+postID+"/publish", adminToken,
		map[string]interface{}{"published": true})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "Blog post published successfully", body["message"])
	assert.NotNil(t, body["data"].(map[string]interface{})["publishedAt"])

	rec = doRequest(t, router, http.MethodPatch, "/api/blog-posts/"+postID+"/publish", adminToken,
		map[string]interface{}{"published": false})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "Blog post unpublished successfully", body["message"])
	assert.Nil(t, body["data"].(map[string]interface{})["publishedAt"], "unpublishing clears the timestamp")

	rec = doRequest(t, router, http.MethodDelete, "/api/blog-posts/"+postID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdatingPublishedPostKeepsTimestamp(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/blog-posts", adminToken, map[string]interface{}{
		"title":     "Week One Recap",
		"content":   "First cut.",
		"published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decodeBody(t, rec)["data"].(map[string]interface{})
	postID := post["id"].(string)
	publishedAt := post["publishedAt"]
	require.NotNil(t, publishedAt)

	// Editing a published post without a timestamp must not clear it.
	rec = doRequest(t, router, http.MethodPut, "/api/blog-posts/"+postID, adminToken, map[string]interface{}{
		"title":     "Week One Recap, Revised",
		"content":   "Second cut.",
		"published": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, true, updated["published"])
	assert.Equal(t, publishedAt, updated["publishedAt"])

	// An explicit timestamp in the body wins.
	rec = doRequest(t, router, http.MethodPut, "/api/blog-posts/"+postID, adminToken, map[string]interface{}{
		"title":       "Week One Recap, Revised",
		"content":     "Second cut.",
		"published":   true,
		"publishedAt": "2024-03-01T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "2024-03-01T00:00:00Z", updated["publishedAt"])

	// Unpublishing through the replace route clears it.
	rec = doRequest(t, router, http.MethodPut, "/api/blog-posts/"+postID, adminToken, map[string]interface{}{
		"title":     "Week One Recap, Revised",
		"content":   "Second cut.",
		"published": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Nil(t, updated["publishedAt"])

	// Republishing without a timestamp stamps a fresh one.
	rec = doRequest(t, router, http.MethodPut, "/api/blog-posts/"+postID, adminToken, map[string]interface{}{
		"title":     "Week One Recap, Revised",
		"content":   "Second cut.",
		"published": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.NotNil(t, updated["publishedAt"])
}

func TestCreateReviewScoreBounds(t *testing.T) {
	_, router := newTestServer(t)

	for _, score := range []float64{-0.1, 10, 11} {
		rec := doRequest(t, router, http.MethodPost, "/api/reviews", adminToken, map[string]interface{}{
			"title":       "Scored Review",
			"description": "d",
			"reviewer":    "critic",
			"score":       score,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "score %v is outside the storable range", score)
	}

	rec := doRequest(t, router, http.MethodPost, "/api/reviews", adminToken, map[string]interface{}{
		"title":       "Scored Review",
		"description": "d",
		"reviewer":    "critic",
		"score":       9.9,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBlogPostRejectsInvalidSlug(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/blog-posts", adminToken, map[string]interface{}{
		"title":   "Valid Title",
		"content": "body",
		"slug":    "Not A Slug",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesAreGated(t *testing.T) {
	_, router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/admin/content", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodGet, "/api/admin/content", "bad-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication failed", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodGet, "/api/admin/content", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Admin access required", body["error"])
	assert.Equal(t, "/user-dashboard", body["redirectTo"])

	rec = doRequest(t, router, http.MethodGet, "/api/admin/content", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateContentValidation(t *testing.T) {
	_, router := newTestServer(t)

	cases := []map[string]interface{}{
		{"contentType": "movie"},                                  // missing title
		{"title": "No Type"},                                      // missing contentType
		{"title": "Bad Type", "contentType": "documentary"},       // outside enum
		{"title": "Bad Rating", "contentType": "movie", "rating": "X"},
		{"title": "Bad Platform", "contentType": "movie", "streamingPlatform": "vhs"},
	}
	for _, payload := range cases {
		rec := doRequest(t, router, http.MethodPost, "/api/content", adminToken, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload %v should be rejected", payload)
	}
}

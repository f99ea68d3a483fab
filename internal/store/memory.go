package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/orunto/nollywood-film-club/internal/domain"
)

// Memory bundles in-memory implementations of every store interface over
// one set of maps, so cross-table behaviour (the featured-flag sweep, the
// cascade on content deletion) matches the real schema. Used by handler
// tests and local development without a database.
type Memory struct {
	Content   *MemoryContentStore
	Ratings   *MemoryRatingStore
	Reviews   *MemoryReviewStore
	Blog      *MemoryBlogStore
	Usernames *MemoryUsernameStore
}

// memoryState is the shared backing for the per-entity stores.
type memoryState struct {
	mu        sync.RWMutex
	content   map[string]*domain.Content
	ratings   map[string]*domain.UserRating
	reviews   map[string]*domain.Review
	posts     map[string]*domain.BlogPost
	usernames map[string]*domain.UsernameReservation

	// clock advances one second per write so created_at ordering is
	// deterministic regardless of wall-clock resolution.
	clock time.Time
}

var (
	_ ContentStore  = (*MemoryContentStore)(nil)
	_ RatingStore   = (*MemoryRatingStore)(nil)
	_ ReviewStore   = (*MemoryReviewStore)(nil)
	_ BlogStore     = (*MemoryBlogStore)(nil)
	_ UsernameStore = (*MemoryUsernameStore)(nil)
)

func NewMemory() *Memory {
	state := &memoryState{
		content:   make(map[string]*domain.Content),
		ratings:   make(map[string]*domain.UserRating),
		reviews:   make(map[string]*domain.Review),
		posts:     make(map[string]*domain.BlogPost),
		usernames: make(map[string]*domain.UsernameReservation),
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return &Memory{
		Content:   &MemoryContentStore{state: state},
		Ratings:   &MemoryRatingStore{state: state},
		Reviews:   &MemoryReviewStore{state: state},
		Blog:      &MemoryBlogStore{state: state},
		Usernames: &MemoryUsernameStore{state: state},
	}
}

// tick must be called with the write lock held.
func (s *memoryState) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// averageRating must be called with at least the read lock held.
func (s *memoryState) averageRating(contentID string) *float64 {
	var sum float64
	var count int
	for _, r := range s.ratings {
		if r.ContentID == contentID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

// MemoryContentStore implements ContentStore over the shared state.
type MemoryContentStore struct {
	state *memoryState
}

func (m *MemoryContentStore) GetFeatured(ctx context.Context) (*domain.Content, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	var featured []*domain.Content
	for _, c := range m.state.content {
		if c.IsMovieOfTheWeek {
			featured = append(featured, c)
		}
	}
	if len(featured) == 0 {
		return nil, nil
	}
	sort.Slice(featured, func(i, j int) bool { return featured[i].ID < featured[j].ID })
	cc := *featured[0]
	return &cc, nil
}

func (m *MemoryContentStore) ListOthers(ctx context.Context, limit int) ([]*domain.Content, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	others := []*domain.Content{}
	for _, c := range m.state.content {
		if !c.IsMovieOfTheWeek {
			cc := *c
			cc.UserRating = m.state.averageRating(c.ID)
			others = append(others, &cc)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].CreatedAt.Before(others[j].CreatedAt) })
	if limit > 0 && len(others) > limit {
		others = others[:limit]
	}
	return others, nil
}

func (m *MemoryContentStore) GetByID(ctx context.Context, id string) (*domain.Content, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	c, ok := m.state.content[id]
	if !ok {
		return nil, ErrContentNotFound
	}
	cc := *c
	cc.UserRating = m.state.averageRating(id)
	return &cc, nil
}

func (m *MemoryContentStore) ListAll(ctx context.Context) ([]*domain.Content, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	all := []*domain.Content{}
	for _, c := range m.state.content {
		cc := *c
		all = append(all, &cc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

func (m *MemoryContentStore) Create(ctx context.Context, content *domain.Content) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	content.CreatedAt = m.state.tick()
	content.UpdatedAt = content.CreatedAt
	cc := *content
	m.state.content[content.ID] = &cc
	return nil
}

func (m *MemoryContentStore) Update(ctx context.Context, content *domain.Content) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	existing, ok := m.state.content[content.ID]
	if !ok {
		return ErrContentNotFound
	}
	content.CreatedAt = existing.CreatedAt
	content.UpdatedAt = m.state.tick()
	cc := *content
	m.state.content[content.ID] = &cc
	return nil
}

func (m *MemoryContentStore) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if _, ok := m.state.content[id]; !ok {
		return ErrContentNotFound
	}
	delete(m.state.content, id)
	// Same effect as the schema's ON DELETE CASCADE.
	for rid, r := range m.state.ratings {
		if r.ContentID == id {
			delete(m.state.ratings, rid)
		}
	}
	for rvid, rv := range m.state.reviews {
		if rv.ContentID != nil && *rv.ContentID == id {
			delete(m.state.reviews, rvid)
		}
	}
	return nil
}

func (m *MemoryContentStore) SetFeatured(ctx context.Context, id string, featured bool) (*domain.Content, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	target, ok := m.state.content[id]
	if !ok {
		return nil, ErrContentNotFound
	}
	now := m.state.tick()
	if featured {
		for _, c := range m.state.content {
			if c.ID != id && c.IsMovieOfTheWeek {
				c.IsMovieOfTheWeek = false
				c.UpdatedAt = now
			}
		}
	}
	target.IsMovieOfTheWeek = featured
	target.UpdatedAt = now
	cc := *target
	return &cc, nil
}

// MemoryRatingStore implements RatingStore over the shared state.
type MemoryRatingStore struct {
	state *memoryState
}

func (m *MemoryRatingStore) GetByUserAndContent(ctx context.Context, userID, contentID string) (*domain.UserRating, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	for _, r := range m.state.ratings {
		if r.UserID == userID && r.ContentID == contentID {
			rc := *r
			return &rc, nil
		}
	}
	return nil, ErrRatingNotFound
}

func (m *MemoryRatingStore) Create(ctx context.Context, rating *domain.UserRating) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if _, ok := m.state.content[rating.ContentID]; !ok {
		return ErrContentNotFound
	}
	rating.CreatedAt = m.state.tick()
	rating.UpdatedAt = rating.CreatedAt
	rc := *rating
	m.state.ratings[rating.ID] = &rc
	return nil
}

func (m *MemoryRatingStore) Update(ctx context.Context, id, userID string, rating *float64, review *string) (*domain.UserRating, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	existing, ok := m.state.ratings[id]
	if !ok || existing.UserID != userID {
		return nil, ErrRatingNotFound
	}
	if rating != nil {
		existing.Rating = *rating
	}
	if review != nil {
		existing.Review = review
	}
	existing.UpdatedAt = m.state.tick()
	rc := *existing
	return &rc, nil
}

func (m *MemoryRatingStore) Delete(ctx context.Context, id, userID string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	existing, ok := m.state.ratings[id]
	if !ok || existing.UserID != userID {
		return ErrRatingNotFound
	}
	delete(m.state.ratings, id)
	return nil
}

func (m *MemoryRatingStore) ListByUser(ctx context.Context, userID string) ([]*domain.UserRatingWithContent, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	ratings := []*domain.UserRatingWithContent{}
	for _, r := range m.state.ratings {
		if r.UserID != userID {
			continue
		}
		item := &domain.UserRatingWithContent{UserRating: *r}
		if c, ok := m.state.content[r.ContentID]; ok {
			id, title, contentType := c.ID, c.Title, string(c.ContentType)
			item.Content = domain.ContentSummary{ID: &id, Title: &title, ContentType: &contentType}
		}
		ratings = append(ratings, item)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].CreatedAt.Before(ratings[j].CreatedAt) })
	return ratings, nil
}

func (m *MemoryRatingStore) ListByContent(ctx context.Context, contentID string) ([]*domain.UserRating, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	ratings := []*domain.UserRating{}
	for _, r := range m.state.ratings {
		if r.ContentID == contentID {
			rc := *r
			ratings = append(ratings, &rc)
		}
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].CreatedAt.Before(ratings[j].CreatedAt) })
	return ratings, nil
}

// MemoryReviewStore implements ReviewStore over the shared state.
type MemoryReviewStore struct {
	state *memoryState
}

func (m *MemoryReviewStore) List(ctx context.Context, limit int) ([]*domain.Review, error) {
	all, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MemoryReviewStore) ListAll(ctx context.Context) ([]*domain.Review, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	reviews := []*domain.Review{}
	for _, r := range m.state.reviews {
		rc := *r
		reviews = append(reviews, &rc)
	}
	// published_at ascending with null rows last, matching Postgres ASC
	// null ordering.
	sort.Slice(reviews, func(i, j int) bool {
		a, b := reviews[i].PublishedAt, reviews[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return reviews, nil
}

func (m *MemoryReviewStore) Create(ctx context.Context, review *domain.Review) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if review.ContentID != nil {
		if _, ok := m.state.content[*review.ContentID]; !ok {
			return ErrContentNotFound
		}
	}
	review.CreatedAt = m.state.tick()
	review.UpdatedAt = review.CreatedAt
	rc := *review
	m.state.reviews[review.ID] = &rc
	return nil
}

func (m *MemoryReviewStore) Update(ctx context.Context, review *domain.Review) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	existing, ok := m.state.reviews[review.ID]
	if !ok {
		return ErrReviewNotFound
	}
	review.CreatedAt = existing.CreatedAt
	review.UpdatedAt = m.state.tick()
	rc := *review
	m.state.reviews[review.ID] = &rc
	return nil
}

func (m *MemoryReviewStore) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if _, ok := m.state.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(m.state.reviews, id)
	return nil
}

// MemoryBlogStore implements BlogStore over the shared state.
type MemoryBlogStore struct {
	state *memoryState
}

func (m *MemoryBlogStore) ListAll(ctx context.Context) ([]*domain.BlogPost, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	posts := []*domain.BlogPost{}
	for _, p := range m.state.posts {
		pc := *p
		posts = append(posts, &pc)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.Before(posts[j].CreatedAt) })
	return posts, nil
}

func (m *MemoryBlogStore) Create(ctx context.Context, post *domain.BlogPost) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	for _, p := range m.state.posts {
		if p.Slug == post.Slug {
			return ErrSlugTaken
		}
	}
	post.CreatedAt = m.state.tick()
	post.UpdatedAt = post.CreatedAt
	pc := *post
	m.state.posts[post.ID] = &pc
	return nil
}

func (m *MemoryBlogStore) Update(ctx context.Context, post *domain.BlogPost) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	existing, ok := m.state.posts[post.ID]
	if !ok {
		return ErrBlogPostNotFound
	}
	for _, p := range m.state.posts {
		if p.ID != post.ID && p.Slug == post.Slug {
			return ErrSlugTaken
		}
	}
	post.CreatedAt = existing.CreatedAt
	now := m.state.tick()
	post.UpdatedAt = now
	// Same published_at rule as the SQL update: clear on unpublish, keep
	// the stored timestamp when a published post is edited without one.
	if post.Published {
		if post.PublishedAt == nil {
			post.PublishedAt = existing.PublishedAt
		}
		if post.PublishedAt == nil {
			post.PublishedAt = &now
		}
	} else {
		post.PublishedAt = nil
	}
	pc := *post
	m.state.posts[post.ID] = &pc
	return nil
}

func (m *MemoryBlogStore) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if _, ok := m.state.posts[id]; !ok {
		return ErrBlogPostNotFound
	}
	delete(m.state.posts, id)
	return nil
}

func (m *MemoryBlogStore) SetPublished(ctx context.Context, id string, published bool) (*domain.BlogPost, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	post, ok := m.state.posts[id]
	if !ok {
		return nil, ErrBlogPostNotFound
	}
	now := m.state.tick()
	post.Published = published
	if published {
		post.PublishedAt = &now
	} else {
		post.PublishedAt = nil
	}
	post.UpdatedAt = now
	pc := *post
	return &pc, nil
}

// MemoryUsernameStore implements UsernameStore over the shared state.
type MemoryUsernameStore struct {
	state *memoryState
}

func (m *MemoryUsernameStore) IsTaken(ctx context.Context, username string) (bool, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	lower := strings.ToLower(username)
	for _, u := range m.state.usernames {
		if u.Username == lower {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryUsernameStore) Reserve(ctx context.Context, reservation *domain.UsernameReservation) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	reservation.Username = strings.ToLower(reservation.Username)
	for _, u := range m.state.usernames {
		if u.StackUserID == reservation.StackUserID {
			return ErrUserHasUsername
		}
		if u.Username == reservation.Username {
			return ErrUsernameTaken
		}
	}
	reservation.CreatedAt = m.state.tick()
	uc := *reservation
	m.state.usernames[reservation.ID] = &uc
	return nil
}

package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/models"
)

type fakeSource struct {
	posts map[string][]models.Post
	err   error
}

func (f *fakeSource) UserPosts(ctx context.Context, username string, count int) ([]models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posts[username], nil
}

type passthroughFilter struct{}

func (passthroughFilter) FilterBatch(ctx context.Context, posts []models.Post) ([]models.Post, []models.Post) {
	return posts, nil
}

type rejectAllFilter struct{}

func (rejectAllFilter) FilterBatch(ctx context.Context, posts []models.Post) ([]models.Post, []models.Post) {
	var filtered []models.Post
	for _, p := range posts {
		filtered = append(filtered, p.Annotate(models.FilterResult{
			Issues: []string{models.IssueTooShort},
			Reason: "too short",
		}))
	}
	return nil, filtered
}

type memStore struct {
	saved    []string
	filtered []string
	seen     map[string]bool
	authors  map[string]bool
	watched  []string
}

func newMemStore() *memStore {
	return &memStore{seen: map[string]bool{}, authors: map[string]bool{}}
}

func (m *memStore) SavePost(ctx context.Context, post models.Post) error {
	m.saved = append(m.saved, post.ID)
	return nil
}

func (m *memStore) SaveFilteredPost(ctx context.Context, post models.Post) error {
	m.filtered = append(m.filtered, post.ID)
	return nil
}

func (m *memStore) PostExists(ctx context.Context, id string) (bool, error) {
	return m.seen[id], nil
}

func (m *memStore) RecentAuthors(ctx context.Context, window time.Duration) (map[string]bool, error) {
	return m.authors, nil
}

func (m *memStore) WatchedAccounts(ctx context.Context) ([]string, error) {
	return m.watched, nil
}

func (m *memStore) TouchAccountChecked(ctx context.Context, username string) error {
	return nil
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func freshPost(id, authorID string) models.Post {
	return models.Post{
		ID:        id,
		Author:    models.Author{UserID: authorID, Username: "u-" + authorID},
		Text:      "recent content",
		CreatedAt: time.Now().Add(-time.Minute),
	}
}

func TestCollector_AcceptsFreshPosts(t *testing.T) {
	source := &fakeSource{posts: map[string][]models.Post{
		"alice": {freshPost("p1", "a1"), freshPost("p2", "a1")},
	}}
	store := newMemStore()

	c := New(source, passthroughFilter{}, store, Options{}, testLogger())
	accepted, err := c.Collect(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(accepted) != 2 {
		t.Fatalf("accepted: %d, want 2", len(accepted))
	}
	if len(store.saved) != 2 {
		t.Errorf("saved: %v, want both posts", store.saved)
	}
}

func TestCollector_DropsStaleAndSeenPosts(t *testing.T) {
	stale := freshPost("old", "a1")
	stale.CreatedAt = time.Now().Add(-2 * time.Hour)

	source := &fakeSource{posts: map[string][]models.Post{
		"alice": {stale, freshPost("seen", "a1"), freshPost("new", "a1")},
	}}
	store := newMemStore()
	store.seen["seen"] = true

	c := New(source, passthroughFilter{}, store, Options{}, testLogger())
	accepted, err := c.Collect(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(accepted) != 1 || accepted[0].ID != "new" {
		t.Errorf("accepted: %v, want only the new post", accepted)
	}
}

func TestCollector_SkipsRecentlyAnsweredAuthors(t *testing.T) {
	source := &fakeSource{posts: map[string][]models.Post{
		"alice": {freshPost("p1", "cooling-down")},
	}}
	store := newMemStore()
	store.authors["cooling-down"] = true

	c := New(source, passthroughFilter{}, store, Options{AuthorCooldown: time.Hour}, testLogger())
	accepted, err := c.Collect(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(accepted) != 0 {
		t.Errorf("accepted: %v, want none", accepted)
	}
}

func TestCollector_PersistsFilteredPosts(t *testing.T) {
	source := &fakeSource{posts: map[string][]models.Post{
		"alice": {freshPost("p1", "a1")},
	}}
	store := newMemStore()

	c := New(source, rejectAllFilter{}, store, Options{}, testLogger())
	accepted, err := c.Collect(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(accepted) != 0 {
		t.Errorf("accepted: %v, want none", accepted)
	}
	if len(store.filtered) != 1 || store.filtered[0] != "p1" {
		t.Errorf("filtered: %v, want [p1]", store.filtered)
	}
}

func TestCollector_CollectWatchedFeedsFromStore(t *testing.T) {
	source := &fakeSource{posts: map[string][]models.Post{
		"alice": {freshPost("p1", "a1")},
		"bob":   {freshPost("p2", "b1")},
	}}
	store := newMemStore()
	store.watched = []string{"alice", "bob"}

	c := New(source, passthroughFilter{}, store, Options{}, testLogger())
	accepted, err := c.CollectWatched(context.Background())
	if err != nil {
		t.Fatalf("CollectWatched failed: %v", err)
	}

	if len(accepted) != 2 {
		t.Fatalf("accepted: %v, want posts from both watched accounts", accepted)
	}
}

func TestCollector_SourceFailureSkipsAccount(t *testing.T) {
	boom := &fakeSource{err: errors.New("rate limited")}
	store := newMemStore()

	c := New(boom, passthroughFilter{}, store, Options{}, testLogger())
	accepted, err := c.Collect(context.Background(), []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("Collect should not fail on account errors: %v", err)
	}
	if len(accepted) != 0 {
		t.Errorf("accepted: %v, want none", accepted)
	}
}

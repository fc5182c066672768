package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/socialpulse/postfilter/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func samplePost(id, authorID string) models.Post {
	return models.Post{
		ID:        id,
		Author:    models.Author{UserID: authorID, Username: "user-" + authorID, Name: "User"},
		Text:      "some content worth keeping around",
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_SaveAndExists(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	exists, err := store.PostExists(ctx, "p1")
	if err != nil {
		t.Fatalf("PostExists failed: %v", err)
	}
	if exists {
		t.Error("post should not exist before save")
	}

	if err := store.SavePost(ctx, samplePost("p1", "a1")); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	exists, err = store.PostExists(ctx, "p1")
	if err != nil {
		t.Fatalf("PostExists failed: %v", err)
	}
	if !exists {
		t.Error("post should exist after save")
	}
}

func TestStore_FilteredPostCountsAsProcessed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	post := samplePost("p2", "a2").Annotate(models.FilterResult{
		Score:  models.Float64(30),
		Issues: []string{"low_information"},
		Reason: "empty",
	})

	if err := store.SaveFilteredPost(ctx, post); err != nil {
		t.Fatalf("SaveFilteredPost failed: %v", err)
	}

	exists, err := store.PostExists(ctx, "p2")
	if err != nil {
		t.Fatalf("PostExists failed: %v", err)
	}
	if !exists {
		t.Error("filtered post should count as processed")
	}
}

func TestStore_RecentAuthors(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SavePost(ctx, samplePost("p3", "author-x")); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	authors, err := store.RecentAuthors(ctx, time.Hour)
	if err != nil {
		t.Fatalf("RecentAuthors failed: %v", err)
	}
	if !authors["author-x"] {
		t.Error("author-x should be recent")
	}

	authors, err = store.RecentAuthors(ctx, 0)
	if err != nil {
		t.Fatalf("RecentAuthors failed: %v", err)
	}
	if authors["author-x"] {
		t.Error("zero window should return no recent authors")
	}
}

func TestStore_WatchedAccounts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, u := range []string{"bob", "alice", "bob"} {
		if err := store.AddWatchedAccount(ctx, u); err != nil {
			t.Fatalf("AddWatchedAccount failed: %v", err)
		}
	}

	accounts, err := store.WatchedAccounts(ctx)
	if err != nil {
		t.Fatalf("WatchedAccounts failed: %v", err)
	}
	if len(accounts) != 2 || accounts[0] != "alice" || accounts[1] != "bob" {
		t.Errorf("WatchedAccounts: %v, want [alice bob]", accounts)
	}

	if err := store.TouchAccountChecked(ctx, "alice"); err != nil {
		t.Errorf("TouchAccountChecked failed: %v", err)
	}
}

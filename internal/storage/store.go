package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/socialpulse/postfilter/internal/models"
)

// Store persists collected posts and filter outcomes in SQLite. It also
// answers the collector's dedupe queries.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			author_id TEXT NOT NULL,
			author_username TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at TEXT NOT NULL,
			discovered_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create posts table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS filtered_posts (
			id TEXT PRIMARY KEY,
			author_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			filtered_reason TEXT,
			quality_issues TEXT,
			quality_score REAL,
			filtered_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create filtered_posts table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS watched_accounts (
			username TEXT PRIMARY KEY,
			last_checked_at TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create watched_accounts table: %w", err)
	}

	return nil
}

// SavePost stores a post that passed the filter.
func (s *Store) SavePost(ctx context.Context, post models.Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to serialize post %s: %w", post.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO posts (id, author_id, author_username, payload, created_at, discovered_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, post.ID, post.Author.UserID, post.Author.Username, string(payload),
		post.CreatedAt.UTC().Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save post %s: %w", post.ID, err)
	}
	return nil
}

// SaveFilteredPost stores a filtered post with its annotations for later
// inspection and threshold tuning.
func (s *Store) SaveFilteredPost(ctx context.Context, post models.Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to serialize post %s: %w", post.ID, err)
	}

	var score sql.NullFloat64
	if post.QualityScore != nil {
		score = sql.NullFloat64{Float64: *post.QualityScore, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO filtered_posts (id, author_id, payload, filtered_reason, quality_issues, quality_score, filtered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, post.ID, post.Author.UserID, string(payload), post.FilteredReason,
		strings.Join(post.QualityIssues, ","), score, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save filtered post %s: %w", post.ID, err)
	}
	return nil
}

// HandleResults persists both partitions of a filtered batch. It satisfies
// the stream consumer's sink contract.
func (s *Store) HandleResults(ctx context.Context, passed, filtered []models.Post) error {
	for _, post := range passed {
		if err := s.SavePost(ctx, post); err != nil {
			return err
		}
	}
	for _, post := range filtered {
		if err := s.SaveFilteredPost(ctx, post); err != nil {
			return err
		}
	}
	return nil
}

// PostExists reports whether the post was already processed, in either
// partition.
func (s *Store) PostExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM posts WHERE id = ?) +
		       (SELECT COUNT(*) FROM filtered_posts WHERE id = ?)
	`, id, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check post %s: %w", id, err)
	}
	return n > 0, nil
}

// RecentAuthors returns the IDs of authors whose posts were accepted within
// the given window. The collector skips them to avoid replying to the same
// account twice in a row.
func (s *Store) RecentAuthors(ctx context.Context, window time.Duration) (map[string]bool, error) {
	cutoff := time.Now().UTC().Add(-window).Format(time.RFC3339)

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT author_id FROM posts WHERE discovered_at > ?`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent authors: %w", err)
	}
	defer rows.Close()

	authors := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		authors[id] = true
	}
	return authors, rows.Err()
}

// WatchedAccounts lists the usernames the collector polls.
func (s *Store) WatchedAccounts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username FROM watched_accounts ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query watched accounts: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		usernames = append(usernames, u)
	}
	return usernames, rows.Err()
}

// AddWatchedAccount registers a username for polling.
func (s *Store) AddWatchedAccount(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO watched_accounts (username) VALUES (?)`, username)
	if err != nil {
		return fmt.Errorf("failed to add watched account %s: %w", username, err)
	}
	return nil
}

// TouchAccountChecked records when an account was last polled.
func (s *Store) TouchAccountChecked(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE watched_accounts SET last_checked_at = ? WHERE username = ?
	`, time.Now().UTC().Format(time.RFC3339), username)
	if err != nil {
		return fmt.Errorf("failed to touch account %s: %w", username, err)
	}
	return nil
}

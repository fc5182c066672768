package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/models"
)

// Source fetches recent posts for one account. The platform wire protocol is
// a collaborator's concern; implementations live outside this module.
type Source interface {
	UserPosts(ctx context.Context, username string, count int) ([]models.Post, error)
}

// Filter is the quality-filter pipeline boundary the collector feeds.
type Filter interface {
	FilterBatch(ctx context.Context, posts []models.Post) (passed, filtered []models.Post)
}

// Store is the subset of the storage layer the collector needs.
type Store interface {
	SavePost(ctx context.Context, post models.Post) error
	SaveFilteredPost(ctx context.Context, post models.Post) error
	PostExists(ctx context.Context, id string) (bool, error)
	RecentAuthors(ctx context.Context, window time.Duration) (map[string]bool, error)
	WatchedAccounts(ctx context.Context) ([]string, error)
	TouchAccountChecked(ctx context.Context, username string) error
}

type Options struct {
	// PostsPerAccount is how many posts to request per poll.
	PostsPerAccount int
	// MaxAge drops posts older than this at collection time.
	MaxAge time.Duration
	// AuthorCooldown skips authors already accepted within this window.
	AuthorCooldown time.Duration
}

func (o *Options) applyDefaults() {
	if o.PostsPerAccount == 0 {
		o.PostsPerAccount = 20
	}
	if o.MaxAge == 0 {
		o.MaxAge = 30 * time.Minute
	}
}

// Collector polls watched accounts, dedupes against the store, runs the
// quality filter and persists both partitions.
type Collector struct {
	source Source
	filter Filter
	store  Store
	opts   Options
	logger *zerolog.Logger
}

func New(source Source, filter Filter, store Store, opts Options, logger *zerolog.Logger) *Collector {
	opts.applyDefaults()
	return &Collector{
		source: source,
		filter: filter,
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// CollectWatched polls every account on the store's watch list.
func (c *Collector) CollectWatched(ctx context.Context) ([]models.Post, error) {
	accounts, err := c.store.WatchedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return c.Collect(ctx, accounts)
}

// Collect polls every account and returns the accepted posts across all of
// them. A failing account is logged and skipped; it never aborts the sweep.
func (c *Collector) Collect(ctx context.Context, accounts []string) ([]models.Post, error) {
	var accepted []models.Post

	for _, account := range accounts {
		if ctx.Err() != nil {
			return accepted, ctx.Err()
		}

		posts, err := c.collectAccount(ctx, account)
		if err != nil {
			c.logger.Warn().Err(err).Str("account", account).Msg("account poll failed")
			continue
		}
		accepted = append(accepted, posts...)
	}

	return accepted, nil
}

func (c *Collector) collectAccount(ctx context.Context, account string) ([]models.Post, error) {
	posts, err := c.source.UserPosts(ctx, account, c.opts.PostsPerAccount)
	if err != nil {
		return nil, err
	}

	recent := c.dropStale(posts)
	fresh, err := c.dropProcessed(ctx, recent)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("account", account).
		Int("fetched", len(posts)).
		Int("recent", len(recent)).
		Int("new", len(fresh)).
		Msg("account polled")

	passed, filtered := c.filter.FilterBatch(ctx, fresh)

	for _, post := range filtered {
		if err := c.store.SaveFilteredPost(ctx, post); err != nil {
			c.logger.Error().Err(err).Str("post_id", post.ID).Msg("failed to save filtered post")
		}
	}
	for _, post := range passed {
		if err := c.store.SavePost(ctx, post); err != nil {
			c.logger.Error().Err(err).Str("post_id", post.ID).Msg("failed to save post")
		}
	}

	if err := c.store.TouchAccountChecked(ctx, account); err != nil {
		c.logger.Warn().Err(err).Str("account", account).Msg("failed to update last-checked time")
	}

	return passed, nil
}

func (c *Collector) dropStale(posts []models.Post) []models.Post {
	now := time.Now()

	var recent []models.Post
	for _, post := range posts {
		if post.AgeMinutes(now) < c.opts.MaxAge.Minutes() {
			recent = append(recent, post)
		}
	}
	return recent
}

func (c *Collector) dropProcessed(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	recentAuthors, err := c.store.RecentAuthors(ctx, c.opts.AuthorCooldown)
	if err != nil {
		return nil, err
	}

	var fresh []models.Post
	for _, post := range posts {
		seen, err := c.store.PostExists(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		if seen || recentAuthors[post.Author.UserID] {
			continue
		}
		fresh = append(fresh, post)
	}
	return fresh, nil
}

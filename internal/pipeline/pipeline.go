package pipeline

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/config"
	"github.com/socialpulse/postfilter/internal/models"
)

// RuleChecker runs the deterministic rule stage over one post.
type RuleChecker interface {
	Check(post models.Post) models.FilterResult
}

// AIScorer runs the semantic scoring stage over rule-approved posts.
type AIScorer interface {
	Score(ctx context.Context, posts []models.Post) (passed, filtered []models.Post)
}

// Pipeline is the two-stage quality filter: a synchronous rule pass followed
// by the batched AI scoring pass.
type Pipeline struct {
	cfg    config.FilterConfig
	rules  RuleChecker
	scorer AIScorer
	logger *zerolog.Logger
}

func New(cfg config.FilterConfig, rules RuleChecker, scorer AIScorer, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		rules:  rules,
		scorer: scorer,
		logger: logger,
	}
}

// FilterBatch partitions posts into (passed, filtered). Filtered posts are
// annotated copies; the input slice is never mutated. The filtered partition
// lists rule-filtered posts first, then AI-filtered ones, each in input order.
func (p *Pipeline) FilterBatch(ctx context.Context, posts []models.Post) ([]models.Post, []models.Post) {
	if !p.cfg.Enabled || len(posts) == 0 {
		return posts, nil
	}

	rulePassed, ruleFiltered := p.applyRules(posts)

	p.logger.Info().
		Int("total", len(posts)).
		Int("passed", len(rulePassed)).
		Int("filtered", len(ruleFiltered)).
		Msg("rule stage complete")

	if !p.cfg.AI.Enabled || len(rulePassed) == 0 {
		return rulePassed, ruleFiltered
	}

	aiPassed, aiFiltered := p.scorer.Score(ctx, rulePassed)

	p.logger.Info().
		Int("scored", len(rulePassed)).
		Int("passed", len(aiPassed)).
		Int("filtered", len(aiFiltered)).
		Msg("ai stage complete")

	return aiPassed, append(ruleFiltered, aiFiltered...)
}

func (p *Pipeline) applyRules(posts []models.Post) ([]models.Post, []models.Post) {
	var passed, filtered []models.Post

	for _, post := range posts {
		result := p.rules.Check(post)
		if result.Passed {
			passed = append(passed, post)
		} else {
			filtered = append(filtered, post.Annotate(result))
		}
	}

	return passed, filtered
}

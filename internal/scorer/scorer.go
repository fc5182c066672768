package scorer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/config"
	"github.com/socialpulse/postfilter/internal/llm"
	"github.com/socialpulse/postfilter/internal/models"
)

const scoringMaxTokens = 1024

// Scorer runs the semantic quality stage over rule-approved posts. Posts are
// processed in consecutive batches of cfg.BatchSize; a batch's tasks run
// concurrently (further capped by cfg.MaxConcurrent) and the next batch only
// starts once every task of the current one has resolved.
type Scorer struct {
	client llm.LLMClient
	cfg    config.AIConfig
	logger *zerolog.Logger
}

func NewScorer(client llm.LLMClient, cfg config.AIConfig, logger *zerolog.Logger) *Scorer {
	return &Scorer{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Score partitions posts into (passed, filtered), preserving input order in
// each partition. Every failure mode resolves to a FilterResult; no error
// escapes a scoring task or this method.
func (s *Scorer) Score(ctx context.Context, posts []models.Post) ([]models.Post, []models.Post) {
	var passed, filtered []models.Post

	for start := 0; start < len(posts); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(posts) {
			end = len(posts)
		}
		batch := posts[start:end]

		results := make([]models.FilterResult, len(batch))
		sem := make(chan struct{}, s.cfg.MaxConcurrent)
		var wg sync.WaitGroup

		for i, post := range batch {
			wg.Add(1)
			go func(slot int, p models.Post) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				results[slot] = s.scorePost(ctx, p)
			}(i, post)
		}

		wg.Wait()

		for i, post := range batch {
			result := results[i]
			if result.Passed {
				annotated := post
				annotated.QualityScore = result.Score
				passed = append(passed, annotated)
			} else {
				filtered = append(filtered, post.Annotate(result))
			}
		}

		s.logger.Debug().
			Int("batch_size", len(batch)).
			Int("passed", len(passed)).
			Int("filtered", len(filtered)).
			Msg("batch scored")
	}

	return passed, filtered
}

// scorePost runs one scoring call. The per-call timeout cancels only this
// call; siblings in the batch keep running.
func (s *Scorer) scorePost(ctx context.Context, post models.Post) (result models.FilterResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("post_id", post.ID).
				Interface("panic", r).
				Msg("scoring task panicked")
			result = s.failureResult(fmt.Errorf("scoring task panicked: %v", r))
		}
	}()

	timeout := time.Duration(s.cfg.TimeoutSeconds * float64(time.Second))
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type invokeOutcome struct {
		resp *llm.LLMResponse
		err  error
	}

	// The client call may block without honoring the context, so it runs on
	// its own goroutine and the deadline is enforced here.
	outcome := make(chan invokeOutcome, 1)
	go func() {
		request := llm.LLMRequest{
			Prompt:       BuildUserPrompt(post),
			SystemPrompt: BuildSystemPrompt(),
			Model:        s.cfg.Model,
			MaxTokens:    scoringMaxTokens,
		}

		var resp *llm.LLMResponse
		var err error
		if s.cfg.Retry {
			resp, err = s.client.InvokeModelWithRetry(callCtx, request)
		} else {
			resp, err = s.client.InvokeModel(callCtx, request)
		}
		outcome <- invokeOutcome{resp: resp, err: err}
	}()

	select {
	case <-callCtx.Done():
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return s.timeoutResult(post)
		}
		return s.failureResult(callCtx.Err())
	case out := <-outcome:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				return s.timeoutResult(post)
			}
			s.logger.Warn().
				Err(out.err).
				Str("post_id", post.ID).
				Msg("scoring call failed")
			return s.failureResult(out.err)
		}
		return ParseResponse(out.resp.Content, s.cfg.MinQualityScore)
	}
}

func (s *Scorer) timeoutResult(post models.Post) models.FilterResult {
	s.logger.Warn().
		Str("post_id", post.ID).
		Float64("timeout_seconds", s.cfg.TimeoutSeconds).
		Msg("scoring call timed out")

	return models.FilterResult{
		Passed: s.cfg.OnFailure != models.OnFailureFilter,
		Score:  models.Float64(defaultScore),
		Issues: []string{models.IssueAITimeout},
		Reason: "timeout",
	}
}

func (s *Scorer) failureResult(err error) models.FilterResult {
	if s.cfg.OnFailure == models.OnFailureFilter {
		return models.FilterResult{
			Passed: false,
			Issues: []string{models.IssueAIError},
			Reason: fmt.Sprintf("scoring failed: %v", err),
		}
	}
	// Policy "pass": let the post through without a score.
	return models.FilterResult{Passed: true, Issues: []string{}}
}

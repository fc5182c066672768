package batch

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/models"
)

// Filter is the pipeline boundary the processor drives.
type Filter interface {
	FilterBatch(ctx context.Context, posts []models.Post) (passed, filtered []models.Post)
}

// Outcome is one post's filter disposition, in a shape convenient for
// writing out.
type Outcome struct {
	ID     string   `json:"id"`
	Passed bool     `json:"passed"`
	Score  *float64 `json:"score,omitempty"`
	Issues []string `json:"issues,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// Processor runs the filter over a full input set and reports per-post
// outcomes in the original input order.
type Processor struct {
	filter Filter
	logger *zerolog.Logger
}

func NewProcessor(filter Filter, logger *zerolog.Logger) *Processor {
	return &Processor{
		filter: filter,
		logger: logger,
	}
}

func (p *Processor) Process(ctx context.Context, posts []models.Post) []Outcome {
	passed, filtered := p.filter.FilterBatch(ctx, posts)

	// Queue outcomes per ID so duplicate (or empty) IDs each keep one
	// outcome instead of collapsing to a single map entry.
	byID := make(map[string][]Outcome, len(posts))
	for _, post := range passed {
		byID[post.ID] = append(byID[post.ID], Outcome{
			ID:     post.ID,
			Passed: true,
			Score:  post.QualityScore,
		})
	}
	for _, post := range filtered {
		byID[post.ID] = append(byID[post.ID], Outcome{
			ID:     post.ID,
			Passed: false,
			Score:  post.QualityScore,
			Issues: post.QualityIssues,
			Reason: post.FilteredReason,
		})
	}

	outcomes := make([]Outcome, 0, len(posts))
	for _, post := range posts {
		if queue := byID[post.ID]; len(queue) > 0 {
			outcomes = append(outcomes, queue[0])
			byID[post.ID] = queue[1:]
		}
	}

	p.logger.Info().
		Int("total", len(posts)).
		Int("passed", len(passed)).
		Int("filtered", len(filtered)).
		Msg("batch processed")

	return outcomes
}

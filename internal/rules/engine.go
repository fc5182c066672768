package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/socialpulse/postfilter/internal/config"
	"github.com/socialpulse/postfilter/internal/models"
)

// rule is one deterministic check. It returns the failure reason, or "" when
// the post passes.
type rule struct {
	issue string
	check func(post models.Post) string
}

// Engine classifies posts against an ordered rule chain. The first failing
// rule short-circuits the rest, so a filtered post carries exactly one issue.
type Engine struct {
	chain []rule
}

// NewEngine builds the rule chain from config. Disabled rules are left out
// of the chain; the relative order of the remaining rules is fixed:
// media-only, reply-without-context, length, vague-reference.
func NewEngine(cfg config.RulesConfig) *Engine {
	var chain []rule

	if cfg.FilterMediaOnly {
		chain = append(chain, rule{
			issue: models.IssueMediaOnly,
			check: checkMediaOnly,
		})
	}

	if cfg.FilterReplyWithoutContext {
		chain = append(chain, rule{
			issue: models.IssueReplyWithoutContext,
			check: checkReplyContext,
		})
	}

	chain = append(chain, rule{
		issue: models.IssueTooShort,
		check: lengthCheck(cfg.MinTextLength),
	})

	if cfg.FilterExternalReferences {
		chain = append(chain, rule{
			issue: models.IssueVagueReference,
			check: checkVagueReference,
		})
	}

	return &Engine{chain: chain}
}

// Check evaluates one post. Rule-stage results never carry a score.
func (e *Engine) Check(post models.Post) models.FilterResult {
	for _, r := range e.chain {
		if reason := r.check(post); reason != "" {
			return models.FilterResult{
				Passed: false,
				Issues: []string{r.issue},
				Reason: reason,
			}
		}
	}
	return models.FilterResult{Passed: true, Issues: []string{}}
}

func checkMediaOnly(post models.Post) string {
	if len(post.Media) == 0 {
		return ""
	}
	if nonSpaceCount(StripURLs(post.Text)) < 10 {
		return "media-only post with insufficient text"
	}
	return ""
}

func checkReplyContext(post models.Post) string {
	if !post.IsReply || post.HasQuotedContent {
		return ""
	}
	if HasClearContext(StripURLs(post.Text)) {
		return ""
	}
	return "reply lacks context"
}

func lengthCheck(minTextLength int) func(models.Post) string {
	return func(post models.Post) string {
		clean := StripURLs(post.Text)
		if IsCJKDominant(clean) {
			if utf8.RuneCountInString(clean) < minTextLength {
				return fmt.Sprintf("text too short (<%d chars)", minTextLength)
			}
			return ""
		}
		if len(strings.Fields(clean)) < minTextLength {
			return fmt.Sprintf("text too short (<%d words)", minTextLength)
		}
		return ""
	}
}

func checkVagueReference(post models.Post) string {
	if HasVagueReference(post.Text) {
		return "vague external reference"
	}
	return ""
}

package models

import (
	"time"
)

// OnFailure governs how a post is dispositioned when the AI scoring call
// fails or times out.
type OnFailure string

const (
	OnFailurePass   OnFailure = "pass"
	OnFailureFilter OnFailure = "filter"
)

// Issue tags attached by the rule engine.
const (
	IssueMediaOnly           = "media_only"
	IssueReplyWithoutContext = "reply_without_context"
	IssueTooShort            = "too_short"
	IssueVagueReference      = "vague_reference"
)

// Issue tags attached by the AI stage.
const (
	IssueAITimeout  = "ai_timeout"
	IssueAIError    = "ai_error"
	IssueParseError = "parse_error"
)

type Author struct {
	Username  string `json:"username"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Followers int    `json:"followers,omitempty"`
}

type Media struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Post is one social-media post as delivered by the upstream collector.
// Identity fields are never mutated by the filter stages; annotations are
// applied to copies (see Annotate).
type Post struct {
	ID             string    `json:"id"`
	Author         Author    `json:"author"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	LikeCount      int       `json:"like_count"`
	RepostCount    int       `json:"repost_count"`
	ReplyCount     int       `json:"reply_count"`
	ConversationID string    `json:"conversation_id,omitempty"`

	IsReply          bool     `json:"is_reply"`
	InReplyToID      string   `json:"in_reply_to_id,omitempty"`
	QuotedPostID     string   `json:"quoted_post_id,omitempty"`
	HasQuotedContent bool     `json:"has_quoted_content"`
	Media            []Media  `json:"media,omitempty"`
	URLs             []string `json:"urls,omitempty"`

	DiscoveredAt time.Time `json:"discovered_at,omitempty"`

	// Filter annotations, set only on posts in the filtered partition.
	QualityScore   *float64 `json:"quality_score,omitempty"`
	QualityIssues  []string `json:"quality_issues,omitempty"`
	FilteredReason string   `json:"filtered_reason,omitempty"`
}

// Annotate returns a copy of the post carrying the given filter result.
// The receiver is left untouched so callers can keep sharing it.
func (p Post) Annotate(result FilterResult) Post {
	p.QualityScore = result.Score
	p.QualityIssues = result.Issues
	p.FilteredReason = result.Reason
	return p
}

// AgeMinutes reports how long ago the post was created.
func (p Post) AgeMinutes(now time.Time) float64 {
	return now.Sub(p.CreatedAt).Minutes()
}

// FilterResult is the outcome of checking one post, from either stage.
// Score is set only when the AI stage produced or defaulted one; rule-stage
// results never carry a score. Issues is never nil on the failure paths.
type FilterResult struct {
	Passed bool     `json:"passed"`
	Score  *float64 `json:"score,omitempty"`
	Issues []string `json:"issues"`
	Reason string   `json:"reason,omitempty"`
}

// Float64 is a convenience for building optional scores.
func Float64(v float64) *float64 {
	return &v
}

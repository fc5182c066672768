package scorer

import (
	"fmt"
	"strings"

	"github.com/socialpulse/postfilter/internal/models"
)

// systemPrompt encodes the scoring rubric. It is deterministic so that two
// runs over the same post are comparable.
const systemPrompt = `You are a social post quality assessor. Your task is to judge whether a post's content is worth responding to.

Scoring bands:
- 90-100: excellent, complete, clear and valuable content
- 70-89: good, minor issues but meets the bar
- 50-69: average, noticeable problems but understandable
- 30-49: poor, badly lacking context or unclear
- 0-29: very poor, incomprehensible or without substance

Issue tags:
- context_incomplete: hard to understand without surrounding context
- vague_references: unclear what "this" or "that" refers to
- low_information: too simple or empty to carry value
- media_dependent: only understandable through attached media or links

Assess objectively and consistently, and output standard JSON.`

// BuildSystemPrompt returns the fixed rubric prompt for the scoring call.
func BuildSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt embeds the post text and its metadata into the scoring
// request.
func BuildUserPrompt(post models.Post) string {
	var b strings.Builder

	b.WriteString("Assess the quality of the following post:\n\n")
	fmt.Fprintf(&b, "Post text: %s\n\n", post.Text)
	b.WriteString("Metadata:\n")
	fmt.Fprintf(&b, "- is reply: %v\n", post.IsReply)
	fmt.Fprintf(&b, "- has quoted content: %v\n", post.HasQuotedContent)
	fmt.Fprintf(&b, "- media attachments: %d\n", len(post.Media))
	fmt.Fprintf(&b, "- links: %d\n\n", len(post.URLs))
	b.WriteString(`Consider these dimensions:
1. Context completeness: can the content be understood on its own?
2. Semantic clarity: is the wording clear, without vague references?
3. Information value: does it carry substance rather than pure emotion or filler?
4. Independence: does understanding it depend on external links or media?

Respond with JSON in this shape:
{
    "score": <integer 0-100>,
    "issues": ["issue_tag", ...],
    "analysis": "<short explanation, at most 100 words>"
}

Output only the JSON, nothing else.`)

	return b.String()
}

package scorer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/socialpulse/postfilter/internal/models"
)

const defaultScore = 50.0

// ParseResponse normalizes a raw scorer response into a FilterResult. The
// model is asked for bare JSON but often wraps it in prose or code fences, so
// the first balanced {...} substring is extracted before decoding. Any
// extraction or decoding failure falls back to a passing result with the
// default score and a parse_error tag: a parser defect must never discard
// content.
func ParseResponse(raw string, minQualityScore float64) models.FilterResult {
	jsonStr, ok := extractJSONObject(stripMarkdownCodeBlock(raw))
	if !ok {
		return parseFallback("no JSON object found in response")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return parseFallback(fmt.Sprintf("failed to decode response JSON: %v", err))
	}

	score := defaultScore
	if rawScore, present := payload["score"]; present {
		parsed, ok := coerceScore(rawScore)
		if !ok {
			return parseFallback(fmt.Sprintf("score has unusable type %T", rawScore))
		}
		score = parsed
	}

	issues := []string{}
	if rawIssues, ok := payload["issues"].([]any); ok {
		for _, item := range rawIssues {
			if s, ok := item.(string); ok {
				issues = append(issues, s)
			}
		}
	}

	analysis, _ := payload["analysis"].(string)

	result := models.FilterResult{
		Passed: score >= minQualityScore,
		Score:  models.Float64(score),
		Issues: issues,
	}
	if !result.Passed {
		result.Reason = analysis
	}
	return result
}

func parseFallback(diagnostic string) models.FilterResult {
	return models.FilterResult{
		Passed: true,
		Score:  models.Float64(defaultScore),
		Issues: []string{models.IssueParseError},
		Reason: diagnostic,
	}
}

func coerceScore(v any) (float64, bool) {
	switch s := v.(type) {
	case float64:
		return s, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// extractJSONObject returns the first balanced {...} substring, tracking
// string literals so braces inside values do not unbalance the scan.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// stripMarkdownCodeBlock removes markdown code block formatting if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	// Check for markdown code blocks (```json ... ``` or ``` ... ```)
	if strings.HasPrefix(content, "```") {
		// Find the first newline (after the opening ```)
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		// Find the closing ```
		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		// Extract the content between the code blocks
		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}

package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// StripURLs removes http/https links and trims surrounding whitespace.
func StripURLs(text string) string {
	return strings.TrimSpace(urlPattern.ReplaceAllString(text, ""))
}

func nonSpaceCount(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// IsCJKDominant reports whether the ratio of CJK code points to non-blank
// characters exceeds 0.3.
func IsCJKDominant(text string) bool {
	cjk, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.Is(unicode.Han, r) {
			cjk++
		}
	}
	if total == 0 {
		return false
	}
	return float64(cjk)/float64(total) > 0.3
}

// Words markers that signal the author is stating an opinion of their own,
// which makes a short reply understandable without the parent post.
var opinionMarkers = []string{
	"认为", "觉得", "同意", "反对",
	"think", "believe", "agree", "disagree",
}

var concreteInfoPattern = regexp.MustCompile(`\d+|"[^"]+"|？|\?`)

// HasClearContext reports whether a reply's text can stand on its own:
// long enough, states an opinion, or carries concrete detail (a number,
// a quotation, a question).
func HasClearContext(text string) bool {
	if utf8.RuneCountInString(text) > 30 {
		return true
	}
	for _, marker := range opinionMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return concreteInfoPattern.MatchString(text)
}

// vaguePattern pairs a language tag with an anchored demonstrative+intensifier
// pattern. The table is data so rules stay testable without touching config.
type vaguePattern struct {
	lang    string
	pattern *regexp.Regexp
}

var vaguePatterns = []vaguePattern{
	{"zh", regexp.MustCompile(`^这个[真太很]`)},
	{"zh", regexp.MustCompile(`^那个[真太很]`)},
	{"zh", regexp.MustCompile(`^它[真太很]`)},
	{"en", regexp.MustCompile(`(?i)^this is (so|very|really)`)},
	{"en", regexp.MustCompile(`(?i)^that is (so|very|really)`)},
	{"en", regexp.MustCompile(`(?i)^it is (so|very|really)`)},
}

// HasVagueReference reports whether the text opens with a vague demonstrative
// ("this is so...", "这个太...") and is too short to explain what it refers to.
func HasVagueReference(text string) bool {
	text = strings.TrimSpace(text)
	for _, vp := range vaguePatterns {
		if vp.pattern.MatchString(text) {
			if utf8.RuneCountInString(text) < 30 {
				return true
			}
		}
	}
	return false
}

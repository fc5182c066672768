package rules

import (
	"testing"
)

func TestStripURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no url", "plain text", "plain text"},
		{"trailing url", "check this https://t.co/abc123", "check this"},
		{"url only", "https://example.com/a?b=c", ""},
		{"url mid-sentence", "see https://x.com/p/1 for details", "see  for details"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := StripURLs(test.text); got != test.want {
				t.Errorf("StripURLs(%q) = %q, want %q", test.text, got, test.want)
			}
		})
	}
}

func TestIsCJKDominant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"pure english", "hello world", false},
		{"pure chinese", "你好世界", true},
		{"chinese with punctuation", "太棒了！", true},
		{"mostly english with one cjk", "one 字 two three four five six", false},
		{"mixed above threshold", "Go 语言真好用", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsCJKDominant(test.text); got != test.want {
				t.Errorf("IsCJKDominant(%q) = %v, want %v", test.text, got, test.want)
			}
		})
	}
}

func TestHasClearContext(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"short bare agreement", "same here", false},
		{"long text", "this reply is definitely long enough to stand on its own", true},
		{"english opinion marker", "I think so too", true},
		{"chinese opinion marker", "我觉得不对", true},
		{"contains number", "got 3 of them", true},
		{"contains question mark", "why though?", true},
		{"contains quotation", `he said "never again"`, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := HasClearContext(test.text); got != test.want {
				t.Errorf("HasClearContext(%q) = %v, want %v", test.text, got, test.want)
			}
		})
	}
}

func TestHasVagueReference(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"english vague", "This is so good", true},
		{"english vague case-insensitive", "this is REALLY nice", true},
		{"chinese vague", "这个太厉害了", true},
		{"anchored only", "I heard this is so good", false},
		{"long enough to explain itself", "This is so good, the author walks through every step in detail", false},
		{"plain statement", "the release fixed the regression", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := HasVagueReference(test.text); got != test.want {
				t.Errorf("HasVagueReference(%q) = %v, want %v", test.text, got, test.want)
			}
		})
	}
}

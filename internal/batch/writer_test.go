package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/socialpulse/postfilter/internal/models"
)

type fixedFilter struct{}

func (fixedFilter) FilterBatch(ctx context.Context, posts []models.Post) ([]models.Post, []models.Post) {
	var passed, filtered []models.Post
	for _, p := range posts {
		if strings.HasPrefix(p.ID, "good") {
			passed = append(passed, p)
		} else {
			filtered = append(filtered, p.Annotate(models.FilterResult{
				Issues: []string{models.IssueTooShort},
				Reason: "too short",
			}))
		}
	}
	return passed, filtered
}

func TestProcessor_PreservesInputOrder(t *testing.T) {
	posts := []models.Post{
		{ID: "bad-1"},
		{ID: "good-1"},
		{ID: "bad-2"},
		{ID: "good-2"},
	}

	p := NewProcessor(fixedFilter{}, newTestLogger())
	outcomes := p.Process(context.Background(), posts)

	if len(outcomes) != 4 {
		t.Fatalf("outcomes: %d, want 4", len(outcomes))
	}
	for i, post := range posts {
		if outcomes[i].ID != post.ID {
			t.Errorf("outcomes[%d] = %s, want %s", i, outcomes[i].ID, post.ID)
		}
	}
	if outcomes[0].Passed || !outcomes[1].Passed {
		t.Error("pass flags do not match the filter's partition")
	}
	if outcomes[0].Reason != "too short" {
		t.Errorf("filtered outcome reason: %q", outcomes[0].Reason)
	}
}

func TestProcessor_DuplicateAndEmptyIDs(t *testing.T) {
	posts := []models.Post{
		{ID: "bad-1"},
		{ID: "bad-1"},
		{ID: ""},
		{ID: ""},
		{ID: "good-1"},
	}

	p := NewProcessor(fixedFilter{}, newTestLogger())
	outcomes := p.Process(context.Background(), posts)

	if len(outcomes) != len(posts) {
		t.Fatalf("outcomes: %d, want one per input post (%d)", len(outcomes), len(posts))
	}
	for i, post := range posts {
		if outcomes[i].ID != post.ID {
			t.Errorf("outcomes[%d] = %q, want %q", i, outcomes[i].ID, post.ID)
		}
	}
	if !outcomes[4].Passed {
		t.Error("good-1 should pass")
	}
}

func TestWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSONL, newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	outcomes := []Outcome{
		{ID: "a", Passed: true},
		{ID: "b", Passed: false, Issues: []string{"too_short"}, Reason: "too short"},
	}
	for _, o := range outcomes {
		if err := w.Write(o); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: %d, want 2", len(lines))
	}

	var decoded Outcome
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("output is not valid JSONL: %v", err)
	}
	if decoded.ID != "b" || decoded.Passed {
		t.Errorf("decoded outcome: %+v", decoded)
	}
}

func TestWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatSummary, newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	outcomes := []Outcome{
		{ID: "a", Passed: true},
		{ID: "b", Passed: false, Issues: []string{"too_short"}},
		{ID: "c", Passed: false, Issues: []string{"too_short"}},
		{ID: "d", Passed: false, Issues: []string{"media_only"}},
	}
	for _, o := range outcomes {
		if err := w.Write(o); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	if buf.Len() != 0 {
		t.Error("summary writer should not emit per-record output")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var summary struct {
		Total    int `json:"total"`
		Passed   int `json:"passed"`
		Filtered int `json:"filtered"`
		Issues   []struct {
			Issue string `json:"issue"`
			Count int    `json:"count"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}

	if summary.Total != 4 || summary.Passed != 1 || summary.Filtered != 3 {
		t.Errorf("summary counts: %+v", summary)
	}
	if len(summary.Issues) != 2 || summary.Issues[0].Issue != "media_only" || summary.Issues[1].Count != 2 {
		t.Errorf("summary issues: %+v", summary.Issues)
	}
}

func TestWriter_RejectsUnknownFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, "xml", newTestLogger()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

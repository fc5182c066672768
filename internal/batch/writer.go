package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// Writer emits outcomes either line-by-line (jsonl) or as an aggregate
// summary written on Close.
type Writer struct {
	output  io.Writer
	format  string
	logger  *zerolog.Logger
	encoder *json.Encoder

	total   int
	passed  int
	byIssue map[string]int
}

func NewWriter(output io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	return &Writer{
		output:  output,
		format:  format,
		logger:  logger,
		encoder: json.NewEncoder(output),
		byIssue: make(map[string]int),
	}, nil
}

func (w *Writer) Write(outcome Outcome) error {
	w.total++
	if outcome.Passed {
		w.passed++
	}
	for _, issue := range outcome.Issues {
		w.byIssue[issue]++
	}

	if w.format == FormatJSONL {
		return w.encoder.Encode(outcome)
	}
	return nil
}

// Close flushes the summary when that format was selected.
func (w *Writer) Close() error {
	if w.format != FormatSummary {
		return nil
	}

	type issueCount struct {
		Issue string `json:"issue"`
		Count int    `json:"count"`
	}

	issues := make([]issueCount, 0, len(w.byIssue))
	for issue, count := range w.byIssue {
		issues = append(issues, issueCount{Issue: issue, Count: count})
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Issue < issues[j].Issue })

	summary := struct {
		Total    int          `json:"total"`
		Passed   int          `json:"passed"`
		Filtered int          `json:"filtered"`
		Issues   []issueCount `json:"issues"`
	}{
		Total:    w.total,
		Passed:   w.passed,
		Filtered: w.total - w.passed,
		Issues:   issues,
	}

	return w.encoder.Encode(summary)
}

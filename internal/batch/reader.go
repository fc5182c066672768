package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/socialpulse/postfilter/internal/models"
)

// Record is one line of JSONL input. A malformed line is carried as a record
// with Error set so callers can report it with its line number.
type Record struct {
	LineNumber int
	Post       models.Post
	Error      error
}

// Reader streams posts out of a JSONL file.
type Reader struct {
	input  io.Reader
	logger *zerolog.Logger
}

func NewReader(input io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		input:  input,
		logger: logger,
	}
}

// ReadAll emits one Record per non-blank line. The channel closes when the
// input is exhausted or ctx is cancelled.
func (r *Reader) ReadAll(ctx context.Context) <-chan Record {
	out := make(chan Record)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.input)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := Record{LineNumber: lineNumber}
			var post models.Post
			if err := json.Unmarshal([]byte(line), &post); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
				r.logger.Warn().Err(err).Int("line", lineNumber).Msg("skipping malformed input line")
			} else {
				record.Post = post
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("input read failed")
		}
	}()

	return out
}

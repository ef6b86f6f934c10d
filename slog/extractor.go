package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bizextract"
	"github.com/google/uuid"
)

// Ensure LoggingExtractor implements bizextract.Extractor.
var _ bizextract.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs one line per extraction.
// When a TokenCounter is set, the packed prompt is measured before the call.
type LoggingExtractor struct {
	next    bizextract.Extractor
	counter bizextract.TokenCounter
	logger  *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. counter may be nil.
func NewLoggingExtractor(next bizextract.Extractor, counter bizextract.TokenCounter, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, counter: counter, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(ctx context.Context, pages []*bizextract.Page) (record *bizextract.BusinessRecord) {
	requestID := uuid.New().String()
	prompt := bizextract.BuildPrompt(bizextract.Pack(pages))
	tokens := e.countTokens(ctx, requestID, prompt)

	defer func(begin time.Time) {
		e.logger.Info("extract",
			"request_id", requestID,
			"pages", len(pages),
			"prompt_chars", len(prompt),
			"tokens", tokens,
			"empty", record.IsEmpty(),
			"hours_days", hoursDays(record),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(ctx, pages)
}

func (e *LoggingExtractor) countTokens(ctx context.Context, requestID, prompt string) int {
	if e.counter == nil {
		return 0
	}
	n, err := e.counter.CountTokens(ctx, prompt)
	if err != nil {
		e.logger.Warn("token count failed", "request_id", requestID, "err", err)
		return 0
	}
	return n
}

// hoursDays counts the weekdays with stated hours.
func hoursDays(record *bizextract.BusinessRecord) int {
	if record == nil {
		return 0
	}
	n := 0
	for _, day := range bizextract.Weekdays {
		if record.BusinessHours.Day(day) != "" {
			n++
		}
	}
	return n
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bizextract"
)

// Ensure LoggingCrawler implements bizextract.PageSource.
var _ bizextract.PageSource = (*LoggingCrawler)(nil)

// LoggingCrawler wraps a PageSource and logs each crawl.
type LoggingCrawler struct {
	next   bizextract.PageSource
	logger *slog.Logger
}

// NewLoggingCrawler creates a new LoggingCrawler.
func NewLoggingCrawler(next bizextract.PageSource, logger *slog.Logger) *LoggingCrawler {
	return &LoggingCrawler{next: next, logger: logger}
}

// Crawl delegates to the wrapped source.
func (c *LoggingCrawler) Crawl(ctx context.Context, siteURL string) (pages []*bizextract.Page, err error) {
	defer func(begin time.Time) {
		chars := 0
		for _, p := range pages {
			chars += len(p.Content)
		}
		c.logger.Info("crawl",
			"url", siteURL,
			"pages", len(pages),
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Crawl(ctx, siteURL)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bizextract"
)

// Ensure LoggingSitemapService implements bizextract.SitemapService.
var _ bizextract.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService and logs each discovery.
type LoggingSitemapService struct {
	next   bizextract.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next bizextract.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service. The log line reports how
// many of the discovered URLs look like business pages.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *bizextract.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"business", countBusinessURLs(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

func countBusinessURLs(urls []string) int {
	n := 0
	for _, u := range urls {
		if bizextract.RankURL(u) == bizextract.PriorityBusiness {
			n++
		}
	}
	return n
}

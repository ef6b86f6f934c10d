package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fwojciec/bizextract"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying once per entry in delays and waiting
// that long before each retry. Errors coded ENOTFOUND or EINVALID are
// permanent and are not retried. logger may be nil.
func FetchWithRetry(ctx context.Context, fetcher bizextract.Fetcher, url string, delays []time.Duration, logger *slog.Logger) (string, error) {
	return retry.DoWithData(
		func() (string, error) {
			return fetcher.Fetch(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(uint(len(delays)+1)),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			if int(n) < len(delays) {
				return delays[n]
			}
			return 0
		}),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if logger != nil {
				logger.Debug("fetch retry", "url", url, "attempt", n+2, "err", err)
			}
		}),
	)
}

func isTransient(err error) bool {
	switch bizextract.ErrorCode(err) {
	case bizextract.ENOTFOUND, bizextract.EINVALID:
		return false
	}
	return true
}

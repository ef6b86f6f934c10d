package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/crawl"
	"github.com/fwojciec/bizextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "<html></html>", nil
			},
		}

		html, err := crawl.FetchWithRetry(context.Background(), fetcher, "https://vetclinic.com", []time.Duration{0, 0}, nil)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after all delays are used", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", errors.New("timeout")
			},
		}

		_, err := crawl.FetchWithRetry(context.Background(), fetcher, "https://vetclinic.com", []time.Duration{0, 0}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{bizextract.ENOTFOUND, bizextract.EINVALID} {
			calls := 0
			fetcher := &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					calls++
					return "", bizextract.Errorf(code, "permanent")
				},
			}

			_, err := crawl.FetchWithRetry(context.Background(), fetcher, "https://vetclinic.com", []time.Duration{0, 0}, nil)

			assert.Equal(t, code, bizextract.ErrorCode(err))
			assert.Equal(t, 1, calls, code)
		}
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				cancel()
				return "", errors.New("reset")
			},
		}

		_, err := crawl.FetchWithRetry(ctx, fetcher, "https://vetclinic.com", []time.Duration{time.Hour}, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

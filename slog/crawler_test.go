package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/mock"
	bizslog "github.com/fwojciec/bizextract/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("logs page count and content size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageSource{
			CrawlFn: func(context.Context, string) ([]*bizextract.Page, error) {
				return []*bizextract.Page{
					{URL: "https://a.com", Content: "hello"},
					{URL: "https://a.com/contact", Content: "world!"},
				}, nil
			},
		}

		pages, err := bizslog.NewLoggingCrawler(inner, logger).Crawl(context.Background(), "https://a.com")

		require.NoError(t, err)
		assert.Len(t, pages, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=crawl")
		assert.Contains(t, output, "url=https://a.com")
		assert.Contains(t, output, "pages=2")
		assert.Contains(t, output, "chars=11")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageSource{
			CrawlFn: func(context.Context, string) ([]*bizextract.Page, error) {
				return nil, errors.New("dns failure")
			},
		}

		_, err := bizslog.NewLoggingCrawler(inner, logger).Crawl(context.Background(), "https://a.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"dns failure\"")
	})
}

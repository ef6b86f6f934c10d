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

func TestLoggingSitemapService(t *testing.T) {
	t.Parallel()

	t.Run("reports how many listed pages look business relevant", func(t *testing.T) {
		t.Parallel()

		filter, err := bizextract.NewURLFilter(nil, []string{`/blog/`})
		require.NoError(t, err)

		var gotFilter *bizextract.URLFilter
		var buf bytes.Buffer
		svc := bizslog.NewLoggingSitemapService(&mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, f *bizextract.URLFilter) ([]string, error) {
				gotFilter = f
				return []string{
					"https://vetclinic.com/",
					"https://vetclinic.com/contact-us",
					"https://vetclinic.com/our-team",
					"https://vetclinic.com/gallery",
				}, nil
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		urls, err := svc.DiscoverURLs(context.Background(), "https://vetclinic.com", filter)

		require.NoError(t, err)
		assert.Len(t, urls, 4)
		assert.Same(t, filter, gotFilter)
		for _, want := range []string{`msg="sitemap discovery"`, "url=https://vetclinic.com", "count=4", "business=2", "duration="} {
			assert.Contains(t, buf.String(), want)
		}
	})

	t.Run("logs the failure and returns it", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := bizslog.NewLoggingSitemapService(&mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *bizextract.URLFilter) ([]string, error) {
				return nil, errors.New("robots.txt timed out")
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := svc.DiscoverURLs(context.Background(), "https://vetclinic.com", nil)

		require.EqualError(t, err, "robots.txt timed out")
		assert.Contains(t, buf.String(), "count=0")
		assert.Contains(t, buf.String(), `err="robots.txt timed out"`)
	})
}

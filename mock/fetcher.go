package mock

import (
	"context"

	"github.com/fwojciec/bizextract"
)

var _ bizextract.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bizextract.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ bizextract.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of bizextract.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*bizextract.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*bizextract.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ bizextract.Converter = (*Converter)(nil)

// Converter is a mock implementation of bizextract.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

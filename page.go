package bizextract

import (
	"context"
	"regexp"
	"slices"
)

// Page represents one crawled page of a business website.
// Content is Markdown and may be empty.
type Page struct {
	URL     string
	Title   string
	Content string
}

// PageSource produces the pages of a business website in crawl order.
type PageSource interface {
	Crawl(ctx context.Context, siteURL string) ([]*Page, error)
}

// PageStore keeps the pages of one crawl. Saved pages stay pending until
// Commit publishes them all at once; Abort drops them.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the retained content as HTML.
	ContentHTML string
}

// ContentExtractor selects the useful part of an HTML page.
type ContentExtractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// SitemapService lists the page URLs a site publishes in its sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the same-host page URLs listed in the sitemaps
	// of baseURL that pass filter. A nil filter admits every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows the URLs a crawl may visit.
type URLFilter struct {
	// Include, when non-empty, admits only URLs matching one of its patterns.
	Include []*regexp.Regexp

	// Exclude rejects URLs matching any of its patterns, even included ones.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns. It returns a nil
// filter when both are empty, and EINVALID for a pattern that does not
// compile.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	compile := func(patterns []string) ([]*regexp.Regexp, error) {
		res := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, Errorf(EINVALID, "Invalid URL pattern %q: %v", p, err)
			}
			res = append(res, re)
		}
		return res, nil
	}

	inc, err := compile(include)
	if err != nil {
		return nil, err
	}
	exc, err := compile(exclude)
	if err != nil {
		return nil, err
	}
	return &URLFilter{Include: inc, Exclude: exc}, nil
}

// Match reports whether rawURL passes the filter. A nil filter admits
// every URL.
func (f *URLFilter) Match(rawURL string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(rawURL) }
	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}

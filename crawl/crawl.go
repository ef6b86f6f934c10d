// Package crawl collects the pages of a business website.
// It coordinates sitemap discovery, link walking, fetching, content
// extraction and Markdown conversion.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/bloom"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults.
const (
	DefaultMaxPages    = 25
	DefaultConcurrency = 4
)

// Frontier sizing for link walks.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01

	// walkBudgetFactor bounds fetches during a link walk to
	// walkBudgetFactor*MaxPages, so failing or duplicate pages cannot
	// keep a walk running forever.
	walkBudgetFactor = 4
)

var _ bizextract.PageSource = (*Crawler)(nil)

// Crawler collects the pages of one business website. Sitemap URLs are
// used when available; otherwise links are followed from the home page.
// Only URLs on the site's host are fetched.
type Crawler struct {
	Sitemaps    bizextract.SitemapService
	Fetcher     bizextract.Fetcher
	Extractor   bizextract.ContentExtractor
	Converter   bizextract.Converter
	Links       bizextract.LinkSelector
	Filter      *bizextract.URLFilter
	RateLimiter bizextract.DomainLimiter
	Concurrency int
	MaxPages    int
	RetryDelays []time.Duration
	Logger      *slog.Logger
	Progress    ProgressFunc
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// fetchResult holds the outcome of processing a single URL.
type fetchResult struct {
	position int
	url      string
	page     *bizextract.Page
	err      error
}

// Crawl returns the pages of the site at siteURL in priority order,
// at most MaxPages of them. Pages with no content and pages whose content
// duplicates an earlier page are dropped. It returns ENOTFOUND when no
// page could be collected.
func (c *Crawler) Crawl(ctx context.Context, siteURL string) ([]*bizextract.Page, error) {
	root, err := ParseSiteURL(siteURL)
	if err != nil {
		return nil, err
	}

	var pages []*bizextract.Page
	if urls := c.discover(ctx, root); len(urls) > 0 {
		pages = c.fetchAll(ctx, urls)
	}
	if len(pages) == 0 && c.Links != nil {
		pages = c.walk(ctx, root)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, bizextract.Errorf(bizextract.ENOTFOUND, "No pages could be fetched from %s.", root)
	}
	return pages, nil
}

// discover returns the sitemap URLs worth fetching, best first.
func (c *Crawler) discover(ctx context.Context, root *url.URL) []string {
	if c.Sitemaps == nil {
		return nil
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, root.String(), c.Filter)
	if err != nil {
		c.logger().Warn("sitemap discovery failed, walking links", "url", root.String(), "err", err)
		return nil
	}
	if len(urls) == 0 {
		return nil
	}
	return RankURLs(root, urls, c.maxPages())
}

// fetchAll processes urls concurrently and returns the resulting pages in
// the order of urls.
func (c *Crawler) fetchAll(ctx context.Context, urls []string) []*bizextract.Page {
	total := len(urls)
	c.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan fetchResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				page, err := c.processURL(gctx, u)
				resultCh <- fetchResult{position: i, url: u, page: page, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]fetchResult, total)
	for result := range resultCh {
		n := int(completed.Add(1))
		results[result.position] = result
		if result.err != nil {
			c.notify(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: result.url, Error: result.err})
			continue
		}
		c.notify(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: result.url})
	}

	dedup := newContentSet()
	var pages []*bizextract.Page
	for _, result := range results {
		if result.err != nil || !dedup.add(result.page) {
			continue
		}
		pages = append(pages, result.page)
	}

	c.notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return pages
}

// walk follows links from the home page, best first. URLs are processed
// sequentially so the frontier sees each page's links before the next pop.
func (c *Crawler) walk(ctx context.Context, root *url.URL) []*bizextract.Page {
	maxPages := c.maxPages()
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(bizextract.DiscoveredLink{
		URL:      root.String(),
		Priority: bizextract.PriorityHome,
		Source:   "page",
	})

	c.notify(ProgressEvent{Type: ProgressStarted, Total: maxPages})

	dedup := newContentSet()
	var pages []*bizextract.Page
	for attempts := 0; len(pages) < maxPages && attempts < maxPages*walkBudgetFactor; attempts++ {
		if ctx.Err() != nil {
			break
		}
		link, ok := frontier.Pop()
		if !ok {
			break
		}

		html, err := c.fetch(ctx, link.URL)
		if err != nil {
			c.notify(ProgressEvent{Type: ProgressFailed, Completed: len(pages), Total: maxPages, URL: link.URL, Error: err})
			continue
		}

		c.pushLinks(frontier, root, html, link.URL)

		page, err := c.toPage(link.URL, html)
		if err != nil {
			c.notify(ProgressEvent{Type: ProgressFailed, Completed: len(pages), Total: maxPages, URL: link.URL, Error: err})
			continue
		}
		if !dedup.add(page) {
			continue
		}
		pages = append(pages, page)
		c.notify(ProgressEvent{Type: ProgressCompleted, Completed: len(pages), Total: maxPages, URL: link.URL})
	}

	c.notify(ProgressEvent{Type: ProgressFinished, Completed: len(pages), Total: maxPages})
	return pages
}

// pushLinks queues the same-site links found in html. A link's priority is
// raised to what its path alone implies when that is higher.
func (c *Crawler) pushLinks(frontier *Frontier, root *url.URL, html, pageURL string) {
	links, err := c.Links.ExtractLinks(html, pageURL)
	if err != nil {
		c.logger().Debug("link extraction failed", "url", pageURL, "err", err)
		return
	}
	for _, link := range links {
		u, err := url.Parse(link.URL)
		if err != nil || !SameSite(root, u) || !c.Filter.Match(link.URL) {
			continue
		}
		if p := bizextract.RankURL(link.URL); p > link.Priority {
			link.Priority = p
		}
		if link.Priority == bizextract.PriorityIgnore {
			continue
		}
		frontier.Push(link)
	}
}

// processURL fetches, extracts and converts a single URL.
func (c *Crawler) processURL(ctx context.Context, pageURL string) (*bizextract.Page, error) {
	html, err := c.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return c.toPage(pageURL, html)
}

func (c *Crawler) fetch(ctx context.Context, pageURL string) (string, error) {
	if c.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", bizextract.Errorf(bizextract.EINVALID, "Invalid URL %q.", pageURL)
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, c.Fetcher, pageURL, delays, c.logger())
}

func (c *Crawler) toPage(pageURL, html string) (*bizextract.Page, error) {
	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}
	return &bizextract.Page{
		URL:     pageURL,
		Title:   strings.TrimSpace(extracted.Title),
		Content: strings.TrimSpace(markdown),
	}, nil
}

func (c *Crawler) notify(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Crawler) maxPages() int {
	if c.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return c.MaxPages
}

func (c *Crawler) concurrency() int {
	if c.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}

// contentSet drops empty pages and pages whose content was already seen.
type contentSet map[uint64]struct{}

func newContentSet() contentSet { return make(contentSet) }

func (s contentSet) add(page *bizextract.Page) bool {
	if page == nil || page.Content == "" {
		return false
	}
	h := xxhash.Sum64String(page.Content)
	if _, ok := s[h]; ok {
		return false
	}
	s[h] = struct{}{}
	return true
}

// ParseSiteURL parses a site address such as "vetclinic.com" or
// "https://vetclinic.com/". A missing scheme defaults to https.
func ParseSiteURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, bizextract.Errorf(bizextract.EINVALID, "Site URL required.")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, bizextract.Errorf(bizextract.EINVALID, "Invalid site URL %q.", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, bizextract.Errorf(bizextract.EINVALID, "Unsupported URL scheme %q.", u.Scheme)
	}
	u.Fragment = ""
	return u, nil
}

// SameSite reports whether u is on root's host. A "www." prefix is ignored.
func SameSite(root, u *url.URL) bool {
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return siteHost(root) == siteHost(u)
}

func siteHost(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// RankURLs keeps the same-site URLs from urls, adds the site root, drops
// equivalent duplicates and orders the rest by bizextract.RankURL. Ties
// keep their input order. At most limit URLs are returned.
func RankURLs(root *url.URL, urls []string, limit int) []string {
	seen := make(map[string]struct{}, len(urls)+1)
	candidates := make([]string, 0, len(urls)+1)
	for _, raw := range append([]string{root.String()}, urls...) {
		u, err := url.Parse(raw)
		if err != nil || !SameSite(root, u) {
			continue
		}
		key := bloom.NormalizeURL(raw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, raw)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return bizextract.RankURL(candidates[i]) > bizextract.RankURL(candidates[j])
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

package mock

import (
	"context"

	"github.com/fwojciec/bizextract"
)

var _ bizextract.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of bizextract.PageSource.
type PageSource struct {
	CrawlFn func(ctx context.Context, siteURL string) ([]*bizextract.Page, error)
}

func (s *PageSource) Crawl(ctx context.Context, siteURL string) ([]*bizextract.Page, error) {
	return s.CrawlFn(ctx, siteURL)
}

var _ bizextract.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of bizextract.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *bizextract.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *bizextract.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

var _ bizextract.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of bizextract.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *bizextract.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *bizextract.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ bizextract.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of bizextract.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]bizextract.DiscoveredLink, error)
	NameFn         func() string
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]bizextract.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}

func (s *LinkSelector) Name() string {
	return s.NameFn()
}

var _ bizextract.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of bizextract.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

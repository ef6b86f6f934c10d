package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/bizextract"
)

// maxSitemaps bounds how many sitemap documents one discovery reads.
const maxSitemaps = 20

// fallbackSitemapPaths are tried when robots.txt names no sitemap.
// WordPress, Yoast and Wix sites use the index variants.
var fallbackSitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/wp-sitemap.xml",
}

var _ bizextract.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs returns the page URLs listed in the site's sitemaps that are
// on baseURL's host, deduplicated, in sitemap order. It returns an empty
// slice when the site has no sitemap. Child sitemaps that fail to load are
// skipped.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *bizextract.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, bizextract.Errorf(bizextract.EINVALID, "invalid base URL %q", baseURL)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemapURLs, err := s.findSitemapURLs(ctx, root)
	if err != nil {
		return nil, err
	}

	walker := &sitemapWalker{svc: s, seen: make(map[string]bool)}
	var pages []string
	seenPages := make(map[string]bool)
	for _, sitemapURL := range sitemapURLs {
		for _, u := range walker.walk(ctx, sitemapURL) {
			if seenPages[u] || !sameHost(base, u) || !filter.Match(u) {
				continue
			}
			seenPages[u] = true
			pages = append(pages, u)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []string{}
	}
	return pages, nil
}

// findSitemapURLs reads Sitemap: directives from robots.txt, falling back
// to the first well-known sitemap path that parses.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.parseRobots(ctx, robots); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, p := range fallbackSitemapPaths {
		candidate := root.ResolveReference(&url.URL{Path: p}).String()
		if _, err := s.fetchXML(ctx, candidate); err == nil {
			return []string{candidate}, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (s *SitemapService) parseRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > len("sitemap:") && strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// sitemapWalker resolves sitemap indexes depth-first, reading each sitemap
// at most once and at most maxSitemaps in total.
type sitemapWalker struct {
	svc  *SitemapService
	seen map[string]bool
}

func (w *sitemapWalker) walk(ctx context.Context, sitemapURL string) []string {
	if ctx.Err() != nil || w.seen[sitemapURL] || len(w.seen) >= maxSitemaps {
		return nil
	}
	w.seen[sitemapURL] = true

	root, err := w.svc.fetchXML(ctx, sitemapURL)
	if err != nil {
		return nil
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locs(root, "sitemap") {
			urls = append(urls, w.walk(ctx, child)...)
		}
		return urls
	}
	return locs(root, "url")
}

// locs returns the trimmed <loc> values of root's children named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchXML fetches and parses a sitemap document.
func (s *SitemapService) fetchXML(ctx context.Context, target string) (*etree.Element, error) {
	body, err := s.get(ctx, target)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(io.LimitReader(body, DefaultMaxBodyBytes)); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil || (root.Tag != "urlset" && root.Tag != "sitemapindex") {
		return nil, fmt.Errorf("%s is not a sitemap", target)
	}
	return root, nil
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// sameHost reports whether rawURL is on base's host, ignoring "www.".
func sameHost(base *url.URL, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.") ==
		strings.TrimPrefix(strings.ToLower(base.Host), "www.")
}

// Package goquery implements link discovery and content selection for
// business websites using CSS selectors.
package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bizextract"
)

var _ bizextract.LinkSelector = (*LinkSelector)(nil)

// region maps a CSS selector to the priority of the links inside it.
type region struct {
	selector string
	priority bizextract.LinkPriority
	source   string
}

// Regions are scanned in order. A link found in several regions keeps
// the highest priority and its first position.
var regions = []region{
	{`header a[href], nav a[href], [role="navigation"] a[href], .menu a[href], .navbar a[href]`, bizextract.PriorityNavigation, "nav"},
	{`main a[href], article a[href], .content a[href]`, bizextract.PriorityContent, "content"},
	{`footer a[href], .footer a[href]`, bizextract.PriorityFooter, "footer"},
	{`a[href]`, bizextract.PriorityFallback, "page"},
}

// businessTerms in anchor text mark links worth following first even when
// the URL path says nothing, e.g. "/page-12" labelled "Contact Us".
var businessTerms = []string{
	"contact",
	"about",
	"hours",
	"location",
	"directions",
	"services",
	"our team",
	"staff",
	"meet",
	"doctors",
}

// skippedExtensions are assets that never carry business details.
var skippedExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".zip": true, ".mp3": true,
	".mp4": true, ".mov": true, ".css": true, ".js": true, ".xml": true,
	".doc": true, ".docx": true,
}

// LinkSelector extracts same-site links from a business web page.
type LinkSelector struct{}

// NewLinkSelector creates a new LinkSelector.
func NewLinkSelector() *LinkSelector {
	return &LinkSelector{}
}

// Name returns the selector's identifier.
func (s *LinkSelector) Name() string {
	return "business"
}

// ExtractLinks returns the same-site page links in html, deduplicated and in
// document order of first occurrence. A link's priority is the highest of
// its page region, its URL path and its anchor text.
func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]bizextract.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, bizextract.Errorf(bizextract.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bizextract.Errorf(bizextract.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]int)
	var links []bizextract.DiscoveredLink

	for _, r := range regions {
		doc.Find(r.selector).Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			resolved := resolveLink(base, href)
			if resolved == "" {
				return
			}

			text := strings.Join(strings.Fields(sel.Text()), " ")
			link := bizextract.DiscoveredLink{
				URL:      resolved,
				Priority: linkPriority(r.priority, resolved, text),
				Text:     text,
				Source:   r.source,
			}

			if idx, ok := seen[resolved]; ok {
				if link.Priority > links[idx].Priority {
					links[idx] = link
				}
				return
			}
			seen[resolved] = len(links)
			links = append(links, link)
		})
	}

	return links, nil
}

func linkPriority(regionPriority bizextract.LinkPriority, rawURL, text string) bizextract.LinkPriority {
	p := max(regionPriority, bizextract.RankURL(rawURL))
	lower := strings.ToLower(text)
	for _, term := range businessTerms {
		if strings.Contains(lower, term) {
			return max(p, bizextract.PriorityBusiness)
		}
	}
	return p
}

// resolveLink resolves href against base and returns "" for links that
// should not be crawled: non-HTTP schemes, other hosts, assets and links
// back to the base page.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if siteHost(resolved) != siteHost(base) {
		return ""
	}
	if skippedExtensions[strings.ToLower(path.Ext(resolved.Path))] {
		return ""
	}

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return ""
	}
	return resolved.String()
}

func siteHost(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "sms:") ||
		strings.HasPrefix(href, "data:")
}

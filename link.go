package bizextract

import (
	"context"
	"net/url"
	"strings"
)

// LinkPriority orders links during a walk. Higher values are visited first.
type LinkPriority int

// Priority levels. PriorityIgnore links are never followed.
const (
	PriorityIgnore     LinkPriority = 0
	PriorityFallback   LinkPriority = 10
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityBusiness   LinkPriority = 120
	PriorityHome       LinkPriority = 150
)

// businessKeywords mark paths that usually carry contact details,
// hours, services or staff.
var businessKeywords = []string{
	"contact",
	"about",
	"hours",
	"location",
	"visit",
	"service",
	"team",
	"staff",
	"doctor",
	"veterinarian",
	"our-",
	"faq",
}

// RankURL returns the priority implied by a URL's path alone.
// The site root ranks highest, then business-relevant paths.
// Other URLs return PriorityIgnore so callers can fall back to
// their own priority.
func RankURL(rawURL string) LinkPriority {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PriorityIgnore
	}
	path := strings.ToLower(strings.Trim(u.Path, "/"))
	if path == "" || path == "index.html" || path == "index.php" {
		return PriorityHome
	}
	for _, kw := range businessKeywords {
		if strings.Contains(path, kw) {
			return PriorityBusiness
		}
	}
	return PriorityIgnore
}

// DiscoveredLink is a link found on a crawled page, ranked for visiting.
// Source names the page region it came from: "nav", "content", "footer"
// or "page".
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Source   string
}

// LinkSelector finds the links on a page worth following, resolved
// against baseURL.
type LinkSelector interface {
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
	Name() string
}

// URLFrontier is the queue of pages still to visit during a link walk.
// Push reports false for a URL that was queued before. Pop hands out the
// highest-priority link and reports false once the queue is empty.
type URLFrontier interface {
	Push(link DiscoveredLink) bool
	Pop() (DiscoveredLink, bool)
	Len() int
}

// DomainLimiter spaces out requests to one site. Wait returns the
// context's error if ctx ends first.
type DomainLimiter interface {
	Wait(ctx context.Context, domain string) error
}

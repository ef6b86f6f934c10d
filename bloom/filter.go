// Package bloom provides approximate URL deduplication for crawls.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers crawled URLs. URLs are normalized before they are
// added or tested, so trivially different spellings of a page collide.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n URLs at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records a URL.
func (f *Filter) Add(rawURL string) {
	f.f.AddString(NormalizeURL(rawURL))
}

// Test reports whether the URL may have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	return f.f.TestString(NormalizeURL(rawURL))
}

// TestAndAdd records a URL and reports whether it may have been seen before.
func (f *Filter) TestAndAdd(rawURL string) bool {
	return f.f.TestAndAddString(NormalizeURL(rawURL))
}

// EstimatedCount returns the approximate number of distinct URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// NormalizeURL returns the canonical form used for deduplication:
// lowercase scheme and host, no "www." prefix, no default port, no
// fragment and no trailing slash. Unparseable input is returned trimmed.
func NormalizeURL(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		return raw
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host += ":" + port
	}
	u.Host = host

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u.String()
}

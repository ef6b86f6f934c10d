// Package http fetches business web pages and sitemaps over plain HTTP.
// It does not execute JavaScript; see the rod package for rendered pages.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/fwojciec/bizextract"
)

// Fetch defaults.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxBodyBytes = 5 << 20
	DefaultUserAgent    = "Mozilla/5.0 (compatible; bizextract/1.0; +https://github.com/fwojciec/bizextract)"
)

var _ bizextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages over HTTP.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header. Defaults to DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
// Longer bodies are truncated. Defaults to DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch returns the HTML at url.
//
// Missing pages (404, 410) return ENOTFOUND and non-HTML responses return
// EINVALID; both are permanent. Other failures are plain errors and may be
// retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", bizextract.Errorf(bizextract.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", bizextract.Errorf(bizextract.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	if !isHTML(resp.Header.Get("Content-Type")) {
		return "", bizextract.Errorf(bizextract.EINVALID, "not an HTML page: %s (%s)", url, resp.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isHTML accepts HTML media types and a missing Content-Type header.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

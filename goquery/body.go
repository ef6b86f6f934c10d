package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bizextract"
)

var _ bizextract.ContentExtractor = (*BodyExtractor)(nil)

// noise is removed before the body is returned.
const noise = "script, style, noscript, template, iframe, svg, canvas, link, meta"

// BodyExtractor keeps the whole page body minus scripts and styling.
// Headers and footers are retained because business sites often put the
// phone number, address and opening hours there.
type BodyExtractor struct{}

// NewBodyExtractor creates a new BodyExtractor.
func NewBodyExtractor() *BodyExtractor {
	return &BodyExtractor{}
}

// Extract returns the page title and the cleaned body HTML.
func (e *BodyExtractor) Extract(html string) (*bizextract.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bizextract.Errorf(bizextract.EINVALID, "failed to parse HTML: %v", err)
	}

	title := pageTitle(doc)

	body := doc.Find("body").First()
	body.Find(noise).Remove()
	body.Find(`[hidden], [aria-hidden="true"]`).Remove()

	content, err := body.Html()
	if err != nil {
		return nil, bizextract.Errorf(bizextract.EINTERNAL, "failed to render body: %v", err)
	}
	return &bizextract.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(content),
	}, nil
}

func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("head title").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

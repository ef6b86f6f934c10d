// Package readability selects the main content of a page with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/bizextract"
	"github.com/go-shiori/go-readability"
)

var _ bizextract.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and content HTML. The site name is
// used when the page has no title.
func (e *Extractor) Extract(rawHTML string) (*bizextract.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, bizextract.Errorf(bizextract.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, bizextract.Errorf(bizextract.EINVALID, "extracting content: %v", err)
	}

	title := article.Title
	if title == "" {
		title = article.SiteName
	}
	return &bizextract.ExtractResult{
		Title:       strings.TrimSpace(title),
		ContentHTML: article.Content,
	}, nil
}

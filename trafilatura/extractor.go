// Package trafilatura selects the main content of a page with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/bizextract"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ bizextract.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. It favors recall and keeps tables, since
// opening hours are often laid out as a table.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and main content HTML. The site name is
// used when the page has no title.
func (e *Extractor) Extract(rawHTML string) (*bizextract.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, bizextract.Errorf(bizextract.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		Focus:           trafilatura.FavorRecall,
		ExcludeComments: true,
	})
	if err != nil {
		return nil, bizextract.Errorf(bizextract.EINVALID, "extracting content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		if contentHTML, err = renderNode(result.ContentNode); err != nil {
			return nil, err
		}
	}

	title := result.Metadata.Title
	if title == "" {
		title = result.Metadata.Sitename
	}
	return &bizextract.ExtractResult{
		Title:       strings.TrimSpace(title),
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

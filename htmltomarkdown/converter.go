// Package htmltomarkdown converts extracted page HTML to Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/bizextract"
)

var _ bizextract.Converter = (*Converter)(nil)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Converter wraps html-to-markdown with the CommonMark and table plugins.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert returns html as Markdown with runs of blank lines collapsed.
// Blank input converts to "".
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", bizextract.Errorf(bizextract.EINVALID, "converting HTML: %v", err)
	}
	return strings.TrimSpace(blankRuns.ReplaceAllString(md, "\n\n")), nil
}

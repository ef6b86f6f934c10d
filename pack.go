package bizextract

import (
	"strings"
	"unicode/utf8"
)

// Packing budgets, counted in characters (runes).
const (
	MaxPageChars  = 50000
	MaxTotalChars = 500000
)

// TruncationMarker is appended to page content cut at MaxPageChars.
const TruncationMarker = "\n...[content truncated]"

const unknownURL = "Unknown URL"

// Pack concatenates page content into a single context string for
// extraction. Each page is framed with its source URL:
//
//	--- PAGE: <url> ---
//	<content>
//
// Blank pages are skipped and do not count against the budget. Content
// longer than MaxPageChars is truncated and marked. Pages are packed in
// input order until the next framed page would push the total past
// MaxTotalChars; that page and everything after it is dropped. The first
// page that has content is always packed.
func Pack(pages []*Page) string {
	var sb strings.Builder
	total := 0
	for _, page := range pages {
		if page == nil || strings.TrimSpace(page.Content) == "" {
			continue
		}

		excerpt := framePage(page.URL, truncateContent(page.Content, MaxPageChars))
		n := utf8.RuneCountInString(excerpt)
		if total > 0 && total+n > MaxTotalChars {
			break
		}

		sb.WriteString(excerpt)
		total += n
	}
	return sb.String()
}

func framePage(url, content string) string {
	if url == "" {
		url = unknownURL
	}
	return "--- PAGE: " + url + " ---\n" + content + "\n\n"
}

// truncateContent cuts s to limit runes and appends TruncationMarker.
// Content within the limit is returned unchanged.
func truncateContent(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + TruncationMarker
		}
		n++
	}
	return s
}

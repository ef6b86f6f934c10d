package bizextract

import "context"

// Extractor turns the crawled pages of one business into a BusinessRecord.
type Extractor interface {
	// Extract packs the pages, asks the extraction service for a record and
	// returns it. It never fails: when the service call fails in any way the
	// result is NewBusinessRecord().
	Extract(ctx context.Context, pages []*Page) *BusinessRecord
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

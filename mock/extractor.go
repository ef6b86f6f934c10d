package mock

import (
	"context"

	"github.com/fwojciec/bizextract"
)

var _ bizextract.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bizextract.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, pages []*bizextract.Page) *bizextract.BusinessRecord
}

func (e *Extractor) Extract(ctx context.Context, pages []*bizextract.Page) *bizextract.BusinessRecord {
	return e.ExtractFn(ctx, pages)
}

var _ bizextract.RecordDecoder = (*RecordDecoder)(nil)

// RecordDecoder is a mock implementation of bizextract.RecordDecoder.
type RecordDecoder struct {
	DecodeFn func(data []byte) (*bizextract.BusinessRecord, error)
}

func (d *RecordDecoder) Decode(data []byte) (*bizextract.BusinessRecord, error) {
	return d.DecodeFn(data)
}

var _ bizextract.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of bizextract.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}

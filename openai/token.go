package openai

import (
	"context"

	"github.com/fwojciec/bizextract"
	"github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding is used for models tiktoken does not know yet. It is the
// encoding of the GPT-4o and GPT-4.1 families.
const fallbackEncoding = "o200k_base"

var _ bizextract.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates prompt size with tiktoken. Encodings are fetched
// once and cached by tiktoken-go.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter returns a TokenCounter for model, or DefaultModel when
// model is empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, bizextract.Errorf(bizextract.ECONFIG, "No tokenizer for model %q: %v", model, err)
		}
	}
	return &TokenCounter{enc: enc}, nil
}

// CountTokens returns the number of tokens in prompt.
func (tc *TokenCounter) CountTokens(ctx context.Context, prompt string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(tc.enc.Encode(prompt, nil, nil)), nil
}

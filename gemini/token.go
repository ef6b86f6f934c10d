package gemini

import (
	"context"

	"github.com/fwojciec/bizextract"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ bizextract.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures prompts offline with the Gemini tokenizer. It is
// used to report how much of the context window a packed site consumes.
type TokenCounter struct {
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer for model, or DefaultModel when
// model is empty. Models without a local tokenizer are an ECONFIG error.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, bizextract.Errorf(bizextract.ECONFIG, "No local tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{local: local}, nil
}

// CountTokens returns the number of tokens prompt occupies as a single
// user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, prompt string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if prompt == "" {
		return 0, nil
	}

	res, err := tc.local.CountTokens([]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}

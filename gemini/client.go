// Package gemini implements business record extraction on Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/bizextract"
	"google.golang.org/genai"
)

// NewClient creates a Gemini API client for the given API key.
// A missing key is a configuration error reported here, before any
// extraction is attempted.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, bizextract.Errorf(bizextract.ECONFIG, "Gemini API key is required. Set the GEMINI_API_KEY environment variable")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return client, nil
}

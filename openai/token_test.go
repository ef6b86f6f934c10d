//go:build integration

package openai_test

import (
	"context"
	"testing"

	"github.com/fwojciec/bizextract"
	bizopenai "github.com/fwojciec/bizextract/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tiktoken downloads its encodings on first use.
func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	for _, model := range []string{"", "gpt-4o-mini", "some-future-model"} {
		t.Run(model, func(t *testing.T) {
			t.Parallel()

			tc, err := bizopenai.NewTokenCounter(model)
			require.NoError(t, err)

			prompt := bizextract.BuildPrompt(bizextract.Pack([]*bizextract.Page{
				{URL: "https://vetclinic.com", Content: "Open 9-5 Mon-Fri, call (555) 111-2222"},
			}))
			n, err := tc.CountTokens(context.Background(), prompt)

			require.NoError(t, err)
			assert.Positive(t, n)

			empty, err := tc.CountTokens(context.Background(), "")
			require.NoError(t, err)
			assert.Zero(t, empty)
		})
	}
}

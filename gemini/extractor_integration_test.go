//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Integration_ExtractsContactDetails(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := gemini.NewClient(ctx, apiKey)
	require.NoError(t, err)

	ext := gemini.NewExtractor(client.Models, newDecoder(t))

	record := ext.Extract(ctx, []*bizextract.Page{
		{URL: "https://oakvet.example.com/contact", Content: "Oak Street Animal Hospital\nOpen 9-5 Mon-Fri, call (555) 111-2222\nWe offer spay and neuter surgery and pet microchips."},
	})

	assert.Contains(t, record.PhoneNumbers, "(555) 111-2222")
	assert.NotEmpty(t, record.BusinessHours.Monday)
	assert.Contains(t, record.ServicesOffered, "Microchipping")
}

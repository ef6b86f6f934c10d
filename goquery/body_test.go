package goquery_test

import (
	"testing"

	"github.com/fwojciec/bizextract/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("keeps header and footer text and drops scripts", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title> Oak Vet | Home </title><style>body{}</style></head>
<body>
<header>Call (555) 111-2222</header>
<script>track()</script>
<main><h1>Welcome</h1><p>Open Mon-Fri 9-5</p></main>
<noscript>Enable JS</noscript>
<div hidden>secret</div>
<footer>123 Oak Street</footer>
</body></html>`

		result, err := goquery.NewBodyExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Oak Vet | Home", result.Title)
		assert.Contains(t, result.ContentHTML, "(555) 111-2222")
		assert.Contains(t, result.ContentHTML, "Open Mon-Fri 9-5")
		assert.Contains(t, result.ContentHTML, "123 Oak Street")
		assert.NotContains(t, result.ContentHTML, "track()")
		assert.NotContains(t, result.ContentHTML, "Enable JS")
		assert.NotContains(t, result.ContentHTML, "secret")
	})

	t.Run("falls back to og:title then h1", func(t *testing.T) {
		t.Parallel()

		og := `<html><head><meta property="og:title" content="Oak Vet"></head><body><h1>Welcome</h1></body></html>`
		result, err := goquery.NewBodyExtractor().Extract(og)
		require.NoError(t, err)
		assert.Equal(t, "Oak Vet", result.Title)

		h1 := `<html><body><h1> Welcome </h1></body></html>`
		result, err = goquery.NewBodyExtractor().Extract(h1)
		require.NoError(t, err)
		assert.Equal(t, "Welcome", result.Title)
	})

	t.Run("returns empty content for empty body", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewBodyExtractor().Extract(`<html><body><script>x()</script></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, result.ContentHTML)
	})
}

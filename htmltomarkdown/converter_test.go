package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ bizextract.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h1>Contact</h1><p>Call (555) 111-2222</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Contact")
		assert.Contains(t, md, "Call (555) 111-2222")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<ul><li>Microchipping</li><li>Ultrasound</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Microchipping")
		assert.Contains(t, md, "- Ultrasound")
	})

	t.Run("converts hours tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Day</th><th>Hours</th></tr></thead>
<tbody>
<tr><td>Monday</td><td>8:00 AM - 6:00 PM</td></tr>
<tr><td>Sunday</td><td>Closed</td></tr>
</tbody>
</table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "| Monday")
		assert.Contains(t, md, "8:00 AM - 6:00 PM")
		assert.Contains(t, md, "Closed")
	})

	t.Run("keeps link targets", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><a href="mailto:hi@oakvet.com">Email us</a></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Email us](mailto:hi@oakvet.com)")
	})

	t.Run("collapses blank lines", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>a</p><div><br><br><br></div><p>b</p>`)

		require.NoError(t, err)
		assert.NotContains(t, md, "\n\n\n")
	})

	t.Run("returns empty string for blank input", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("  \n ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}

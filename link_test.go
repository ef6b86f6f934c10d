package bizextract_test

import (
	"testing"

	"github.com/fwojciec/bizextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bizextract.LinkPriority
	}{
		{"https://vet.example.com", bizextract.PriorityHome},
		{"https://vet.example.com/", bizextract.PriorityHome},
		{"https://vet.example.com/index.html", bizextract.PriorityHome},
		{"https://vet.example.com/contact-us", bizextract.PriorityBusiness},
		{"https://vet.example.com/About/", bizextract.PriorityBusiness},
		{"https://vet.example.com/our-services/dental", bizextract.PriorityBusiness},
		{"https://vet.example.com/blog/2024/fleas", bizextract.PriorityIgnore},
		{"://bad", bizextract.PriorityIgnore},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, bizextract.RankURL(tt.url))
		})
	}
}

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter admits everything", func(t *testing.T) {
		t.Parallel()

		var filter *bizextract.URLFilter
		assert.True(t, filter.Match("https://vetclinic.com/blog/fleas"))
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		t.Parallel()

		filter, err := bizextract.NewURLFilter([]string{`/services`}, []string{`/services/archive`})
		require.NoError(t, err)

		assert.True(t, filter.Match("https://vetclinic.com/services/dental"))
		assert.False(t, filter.Match("https://vetclinic.com/services/archive/2019"))
		assert.False(t, filter.Match("https://vetclinic.com/contact"))
	})

	t.Run("exclude only", func(t *testing.T) {
		t.Parallel()

		filter, err := bizextract.NewURLFilter(nil, []string{`/blog/`, `\.pdf$`})
		require.NoError(t, err)

		assert.True(t, filter.Match("https://vetclinic.com/contact"))
		assert.False(t, filter.Match("https://vetclinic.com/blog/fleas"))
		assert.False(t, filter.Match("https://vetclinic.com/menu.pdf"))
	})
}

func TestNewURLFilter(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without patterns", func(t *testing.T) {
		t.Parallel()

		filter, err := bizextract.NewURLFilter(nil, nil)

		require.NoError(t, err)
		assert.Nil(t, filter)
	})

	t.Run("rejects invalid patterns", func(t *testing.T) {
		t.Parallel()

		_, err := bizextract.NewURLFilter(nil, []string{`(`})

		assert.Equal(t, bizextract.EINVALID, bizextract.ErrorCode(err))
		assert.Contains(t, bizextract.ErrorMessage(err), `"("`)
	})
}

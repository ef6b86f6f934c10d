//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clinicSite serves a site-builder style page whose hours and phone number
// are written by scripts, one of them after a delay.
func clinicSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Oak Vet</title></head>
<body>
<footer><span id="phone">Loading...</span><span id="hours"></span></footer>
<script>
document.getElementById('phone').textContent = '(555) 111-2222';
setTimeout(function () {
  document.getElementById('hours').textContent = 'Mon-Fri 9:00 AM - 5:00 PM';
}, 100);
</script>
</body>
</html>`))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := clinicSite(t)
	fetcher, err := rod.NewFetcher(
		rod.WithFetchTimeout(time.Second),
		rod.WithRenderDelay(500*time.Millisecond),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fetcher.Close() })

	t.Run("returns the DOM after scripts and late widgets ran", func(t *testing.T) {
		html, err := fetcher.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "(555) 111-2222")
		assert.Contains(t, html, "Mon-Fri 9:00 AM - 5:00 PM")
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("honors a canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, srv.URL)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("times out on a page that never loads", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/slow")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close(), "second close is a no-op")

	_, err = fetcher.Fetch(context.Background(), "https://vetclinic.com")
	assert.Equal(t, bizextract.EINVALID, bizextract.ErrorCode(err))
	assert.Equal(t, "fetcher is closed", bizextract.ErrorMessage(err))
}

// Package rod fetches pages through headless Chrome so that sites built
// with JavaScript site builders render before extraction.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/bizextract"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds one page load including the render delay.
const DefaultFetchTimeout = 30 * time.Second

var _ bizextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using a headless Chrome browser.
// It is safe for concurrent use; each Fetch opens its own tab.
type Fetcher struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	timeout     time.Duration
	renderDelay time.Duration

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderDelay waits d after the load event before reading the DOM,
// for widgets that fill in opening hours or contact blocks late.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// NewFetcher launches a headless Chrome browser, downloading it if needed.
// Close must be called to stop the browser.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, bizextract.Errorf(bizextract.ECONFIG, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, bizextract.Errorf(bizextract.ECONFIG, "connecting to browser: %v", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates a new tab to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", bizextract.Errorf(bizextract.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening tab: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", contextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextErr(ctx, err)
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextErr(ctx, err)
	}
	return html, nil
}

// Close stops the browser and its launcher process. It is safe to call
// more than once.
func (f *Fetcher) Close() error {
	f.closeOnce.Do(func() {
		f.closed.Store(true)
		f.closeErr = f.browser.Close()
		f.launcher.Kill()
	})
	return f.closeErr
}

// LauncherPID returns the PID of the launched browser process.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// contextErr prefers the context's error so callers can match
// context.Canceled and context.DeadlineExceeded.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

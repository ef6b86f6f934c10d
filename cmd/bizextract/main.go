package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/crawl"
	"github.com/fwojciec/bizextract/fs"
	"github.com/fwojciec/bizextract/gemini"
	"github.com/fwojciec/bizextract/goquery"
	"github.com/fwojciec/bizextract/htmltomarkdown"
	bizhttp "github.com/fwojciec/bizextract/http"
	"github.com/fwojciec/bizextract/jsonschema"
	bizopenai "github.com/fwojciec/bizextract/openai"
	"github.com/fwojciec/bizextract/readability"
	"github.com/fwojciec/bizextract/rod"
	bizslog "github.com/fwojciec/bizextract/slog"
	"github.com/fwojciec/bizextract/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up credentials. Defaults to os.Getenv.
	Getenv func(string) string

	// Services for end-to-end testing. When set, Run uses them instead of
	// wiring the real implementations.
	Crawler   bizextract.PageSource
	Extractor bizextract.Extractor
	NewStore  func(dir string) bizextract.PageStore

	// NewTokenCounter builds the prompt token counter for a provider and
	// model. Defaults to the providers' local tokenizers.
	NewTokenCounter func(provider, model string) (bizextract.TokenCounter, error)

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Close releases resources acquired while wiring, such as the browser.
func (m *Main) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bizextract"),
		kong.Description("Extract a structured business profile from a business website"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bizextract --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)
	defer m.Close()

	deps.NewStore = m.NewStore
	if deps.NewStore == nil {
		deps.NewStore = func(dir string) bizextract.PageStore {
			dir = filepath.Clean(dir)
			return fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
		}
	}

	// Credentials are checked before any page is fetched.
	if cmd == "extract" {
		deps.Extractor = m.Extractor
		if deps.Extractor == nil {
			ext, err := m.buildExtractor(ctx, &cli.Extract, deps.Logger)
			if err != nil {
				fmt.Fprintf(stderr, "error: %s\n", bizextract.ErrorMessage(err))
				return err
			}
			deps.Extractor = ext
		}
	}

	if cmd == "crawl" || (cmd == "extract" && cli.Extract.URL != "" && cli.Extract.Dir == "") {
		deps.Crawler = m.Crawler
		if deps.Crawler == nil {
			crawler, err := m.buildCrawler(cli, stderr, deps.Logger)
			if err != nil {
				return err
			}
			deps.Crawler = crawler
		}
	}

	return kongCtx.Run(deps)
}

// newLogger logs warnings and errors to stderr, or everything when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (m *Main) buildCrawler(cli *CLI, stderr io.Writer, logger *slog.Logger) (bizextract.PageSource, error) {
	filter, err := bizextract.NewURLFilter(cli.Include, cli.Exclude)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", bizextract.ErrorMessage(err))
		return nil, err
	}

	var fetcher bizextract.Fetcher
	if cli.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, f)
		fetcher = f
	} else {
		fetcher = bizhttp.NewFetcher(bizhttp.WithTimeout(cli.Timeout))
	}

	crawler := &crawl.Crawler{
		Sitemaps:    bizslog.NewLoggingSitemapService(bizhttp.NewSitemapService(nil), logger),
		Fetcher:     bizslog.NewLoggingFetcher(fetcher, logger),
		Extractor:   newContentExtractor(cli.ContentExtractor),
		Converter:   htmltomarkdown.NewConverter(),
		Links:       goquery.NewLinkSelector(),
		Filter:      filter,
		RateLimiter: crawl.NewDomainLimiter(defaultRequestsPerSecond, defaultBurst),
		Concurrency: cli.Concurrency,
		MaxPages:    cli.MaxPages,
		Logger:      logger,
		Progress: func(event crawl.ProgressEvent) {
			if event.Type == crawl.ProgressFailed {
				fmt.Fprintf(stderr, "  skip %s: %v\n", event.URL, event.Error)
			}
		},
	}
	return bizslog.NewLoggingCrawler(crawler, logger), nil
}

func newContentExtractor(name string) bizextract.ContentExtractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	default:
		return goquery.NewBodyExtractor()
	}
}

func (m *Main) buildExtractor(ctx context.Context, cmd *ExtractCmd, logger *slog.Logger) (bizextract.Extractor, error) {
	decoder, err := jsonschema.NewDecoder()
	if err != nil {
		return nil, err
	}

	var ext bizextract.Extractor
	switch cmd.Provider {
	case "openai":
		client, err := bizopenai.NewClient(m.Getenv("OPENAI_API_KEY"))
		if err != nil {
			return nil, err
		}
		ext = bizopenai.NewExtractor(&client.Chat.Completions, decoder,
			bizopenai.WithModel(cmd.Model),
			bizopenai.WithLogger(logger),
		)
	default:
		client, err := gemini.NewClient(ctx, m.Getenv("GEMINI_API_KEY"))
		if err != nil {
			return nil, err
		}
		ext = gemini.NewExtractor(client.Models, decoder,
			gemini.WithModel(cmd.Model),
			gemini.WithLogger(logger),
		)
	}

	// Token counts are informational. Extraction works without them.
	newCounter := m.NewTokenCounter
	if newCounter == nil {
		newCounter = newTokenCounter
	}
	counter, err := newCounter(cmd.Provider, cmd.Model)
	if err != nil {
		logger.Warn("token counter unavailable", "err", err)
		counter = nil
	}
	return bizslog.NewLoggingExtractor(ext, counter, logger), nil
}

// newTokenCounter builds the local tokenizer matching the provider and model.
// An empty model selects the provider's default.
func newTokenCounter(provider, model string) (bizextract.TokenCounter, error) {
	if provider == "openai" {
		return bizopenai.NewTokenCounter(model)
	}
	return gemini.NewTokenCounter(model)
}

// Politeness limits for a single business site.
const (
	defaultRequestsPerSecond = 2.0
	defaultBurst             = 2
)

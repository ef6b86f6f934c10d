package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/fwojciec/bizextract"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for extraction.
const DefaultModel = "gemini-2.5-flash"

// ContentGenerator is the subset of *genai.Models used for extraction.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Ensure Extractor implements bizextract.Extractor at compile time.
var _ bizextract.Extractor = (*Extractor)(nil)

// Extractor implements bizextract.Extractor using Gemini structured output.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	models  ContentGenerator
	decoder bizextract.RecordDecoder
	model   string
	logger  *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithModel sets the Gemini model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(e *Extractor) {
		if model != "" {
			e.model = model
		}
	}
}

// WithLogger sets the logger used to report failed extractions.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates a new Extractor. Pass client.Models as models.
// If decoder is nil, responses are decoded without schema validation.
func NewExtractor(models ContentGenerator, decoder bizextract.RecordDecoder, opts ...Option) *Extractor {
	e := &Extractor{
		models:  models,
		decoder: decoder,
		model:   DefaultModel,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract packs the pages, sends them to Gemini in a single call and
// returns the decoded record. Any failure is logged and yields
// bizextract.NewBusinessRecord().
func (e *Extractor) Extract(ctx context.Context, pages []*bizextract.Page) (record *bizextract.BusinessRecord) {
	prompt := bizextract.BuildPrompt(bizextract.Pack(pages))

	defer func() {
		if r := recover(); r != nil {
			e.logFailure(fmt.Errorf("panic during extraction: %v", r), prompt)
			record = bizextract.NewBusinessRecord()
		}
	}()

	rec, err := e.generate(ctx, prompt)
	if err != nil {
		e.logFailure(err, prompt)
		return bizextract.NewBusinessRecord()
	}
	return rec
}

func (e *Extractor) generate(ctx context.Context, prompt string) (*bizextract.BusinessRecord, error) {
	result, err := e.models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, bizextract.Errorf(bizextract.EINTERNAL, "gemini returned nil result")
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, bizextract.Errorf(bizextract.EINTERNAL, "gemini returned empty response")
	}

	if e.decoder == nil {
		return bizextract.DecodeRecord([]byte(text))
	}
	return e.decoder.Decode([]byte(text))
}

func (e *Extractor) logFailure(err error, prompt string) {
	e.logger.Error("gemini extraction failed",
		"model", e.model,
		"prompt_chars", len(prompt),
		"err", err,
		"stack", string(debug.Stack()),
	)
}

// BuildConfig returns the GenerateContentConfig for extraction calls:
// zero temperature, JSON output constrained to the record schema, and
// thinking disabled.
func BuildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		},
	}
}

// Package openai implements business record extraction on the OpenAI chat
// completions API with strict JSON Schema output.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// DefaultModel is the OpenAI model used for extraction. It is a
// non-reasoning model so no reasoning tokens are spent.
const DefaultModel = "gpt-4.1-mini"

// schemaName identifies the response format in requests.
const schemaName = "business_record"

// NewClient creates an OpenAI client for the given API key.
// A missing key is a configuration error reported here. The client never
// retries: each extraction is exactly one request.
func NewClient(apiKey string, opts ...option.RequestOption) (*openai.Client, error) {
	if apiKey == "" {
		return nil, bizextract.Errorf(bizextract.ECONFIG, "OpenAI API key is required. Set the OPENAI_API_KEY environment variable")
	}
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	client := openai.NewClient(append(base, opts...)...)
	return &client, nil
}

// CompletionClient is the subset of the chat completions service used for
// extraction. Pass &client.Chat.Completions.
type CompletionClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Ensure Extractor implements bizextract.Extractor at compile time.
var _ bizextract.Extractor = (*Extractor)(nil)

// Extractor implements bizextract.Extractor using OpenAI structured outputs.
type Extractor struct {
	completions CompletionClient
	decoder     bizextract.RecordDecoder
	model       string
	logger      *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithModel sets the OpenAI model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(e *Extractor) {
		if model != "" {
			e.model = model
		}
	}
}

// WithLogger sets the logger used to report failed extractions.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates a new Extractor.
// If decoder is nil, responses are decoded without schema validation.
func NewExtractor(completions CompletionClient, decoder bizextract.RecordDecoder, opts ...Option) *Extractor {
	e := &Extractor{
		completions: completions,
		decoder:     decoder,
		model:       DefaultModel,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract packs the pages, sends them in a single completion request and
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

	rec, err := e.complete(ctx, prompt)
	if err != nil {
		e.logFailure(err, prompt)
		return bizextract.NewBusinessRecord()
	}
	return rec
}

func (e *Extractor) complete(ctx context.Context, prompt string) (*bizextract.BusinessRecord, error) {
	resp, err := e.completions.New(ctx, BuildParams(e.model, prompt))
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, bizextract.Errorf(bizextract.EINTERNAL, "openai returned no choices")
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return nil, bizextract.Errorf(bizextract.EINTERNAL, "openai refused: %s", msg.Refusal)
	}
	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return nil, bizextract.Errorf(bizextract.EINTERNAL, "openai returned empty response")
	}

	if e.decoder == nil {
		return bizextract.DecodeRecord([]byte(text))
	}
	return e.decoder.Decode([]byte(text))
}

func (e *Extractor) logFailure(err error, prompt string) {
	e.logger.Error("openai extraction failed",
		"model", e.model,
		"prompt_chars", len(prompt),
		"err", err,
		"stack", string(debug.Stack()),
	)
}

// BuildParams returns the completion request for a prompt with a strict JSON
// Schema response format. Reasoning models get the lowest reasoning effort
// they accept and no temperature; other models get zero temperature.
func BuildParams(model, prompt string) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        schemaName,
					Description: openai.String("Structured profile of one business extracted from its website."),
					Schema:      jsonschema.RecordSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	}
	if effort, ok := reasoningEffort(model); ok {
		params.ReasoningEffort = effort
	} else {
		params.Temperature = openai.Float(0)
	}
	return params
}

// reasoningEffort reports the minimum effort for reasoning model families.
// The o-series does not accept "minimal".
func reasoningEffort(model string) (shared.ReasoningEffort, bool) {
	m := strings.ToLower(model)
	switch {
	case strings.HasPrefix(m, "gpt-5-chat"):
		return "", false
	case strings.HasPrefix(m, "gpt-5"):
		return shared.ReasoningEffortMinimal, true
	case strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"), strings.HasPrefix(m, "o4"):
		return shared.ReasoningEffortLow, true
	}
	return "", false
}

package openai_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/jsonschema"
	bizopenai "github.com/fwojciec/bizextract/openai"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompletions is a hand-written stub of openai.CompletionClient.
type stubCompletions struct {
	NewFn func(ctx context.Context, body openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
	calls int
}

func (s *stubCompletions) New(ctx context.Context, body openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	s.calls++
	return s.NewFn(ctx, body)
}

func completion(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: content},
		}},
	}
}

const sampleResponse = `{
	"name": "A Clinic",
	"phoneNumbers": "(555) 111-2222",
	"address": "", "city": "", "state": "", "pincode": "", "website": "", "email": "",
	"businessHours": {
		"monday": "9:00 AM - 5:00 PM", "tuesday": "9:00 AM - 5:00 PM",
		"wednesday": "9:00 AM - 5:00 PM", "thursday": "9:00 AM - 5:00 PM",
		"friday": "9:00 AM - 5:00 PM", "saturday": "", "sunday": ""
	},
	"is_24_7": false, "holidayClosures": "",
	"professionals": [{"name": "Dr. Lee", "role": "DVM", "is_available": true}],
	"manager": "", "operationsLead": "", "servicesOffered": ["Microchipping"],
	"servicesNotOffered": "", "specialties": []
}`

var samplePages = []*bizextract.Page{
	{URL: "a.com", Content: "Open 9-5 Mon-Fri, call (555) 111-2222"},
}

func newExtractor(t *testing.T, client bizopenai.CompletionClient, logger *slog.Logger) *bizopenai.Extractor {
	t.Helper()
	dec, err := jsonschema.NewDecoder()
	require.NoError(t, err)
	return bizopenai.NewExtractor(client, dec, bizopenai.WithLogger(logger))
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns decoded record on success", func(t *testing.T) {
		t.Parallel()

		client := &stubCompletions{
			NewFn: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
				return completion(sampleResponse), nil
			},
		}

		record := newExtractor(t, client, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
			Extract(context.Background(), samplePages)

		assert.Equal(t, "(555) 111-2222", record.PhoneNumbers)
		assert.NotEmpty(t, record.BusinessHours.Monday)
		assert.Equal(t, []string{"Microchipping"}, record.ServicesOffered)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("sends packed prompt as the user message", func(t *testing.T) {
		t.Parallel()

		var got openai.ChatCompletionNewParams
		client := &stubCompletions{
			NewFn: func(_ context.Context, body openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
				got = body
				return completion(sampleResponse), nil
			},
		}

		newExtractor(t, client, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
			Extract(context.Background(), samplePages)

		require.Len(t, got.Messages, 1)
		require.NotNil(t, got.Messages[0].OfUser)
		assert.Equal(t, bizextract.BuildPrompt(bizextract.Pack(samplePages)), got.Messages[0].OfUser.Content.OfString.Value)
		assert.Equal(t, bizopenai.DefaultModel, got.Model)
	})

	t.Run("logs and returns default record on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		client := &stubCompletions{
			NewFn: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
				return nil, errors.New("connection reset")
			},
		}

		record := newExtractor(t, client, slog.New(slog.NewTextHandler(&buf, nil))).
			Extract(context.Background(), samplePages)

		assert.Equal(t, bizextract.NewBusinessRecord(), record)
		assert.Contains(t, buf.String(), "openai extraction failed")
		assert.Contains(t, buf.String(), "connection reset")
	})

	t.Run("returns default record for unusable responses", func(t *testing.T) {
		t.Parallel()

		responses := map[string]*openai.ChatCompletion{
			"no choices": {},
			"refusal": {Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Refusal: "I can't help with that."},
			}}},
			"empty content":   completion("   "),
			"schema mismatch": completion(`{"name": "A"}`),
		}

		for name, resp := range responses {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				client := &stubCompletions{
					NewFn: func(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
						return resp, nil
					},
				}

				record := newExtractor(t, client, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
					Extract(context.Background(), samplePages)

				assert.Equal(t, bizextract.NewBusinessRecord(), record)
			})
		}
	})
}

func TestExtractor_Extract_singleRequest(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := bizopenai.NewClient("sk-test", option.WithBaseURL(srv.URL))
	require.NoError(t, err)

	record := newExtractor(t, &client.Chat.Completions, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).
		Extract(context.Background(), samplePages)

	assert.Equal(t, bizextract.NewBusinessRecord(), record)
	assert.Equal(t, int32(1), requests.Load())
}

func TestBuildParams(t *testing.T) {
	t.Parallel()

	t.Run("constrains output to the record schema", func(t *testing.T) {
		t.Parallel()

		params := bizopenai.BuildParams("gpt-test", "prompt")

		assert.Equal(t, "gpt-test", params.Model)
		require.NotNil(t, params.ResponseFormat.OfJSONSchema)
		schema := params.ResponseFormat.OfJSONSchema.JSONSchema
		assert.Equal(t, "business_record", schema.Name)
		assert.True(t, schema.Strict.Value)
		assert.Equal(t, jsonschema.RecordSchema(), schema.Schema)
	})

	t.Run("pins temperature for chat models", func(t *testing.T) {
		t.Parallel()

		for _, model := range []string{bizopenai.DefaultModel, "gpt-4o", "gpt-5-chat-latest"} {
			params := bizopenai.BuildParams(model, "prompt")

			assert.True(t, params.Temperature.Valid(), model)
			assert.InDelta(t, 0.0, params.Temperature.Value, 0.0001, model)
			assert.Empty(t, params.ReasoningEffort, model)
		}
	})

	t.Run("keeps reasoning to a minimum for reasoning models", func(t *testing.T) {
		t.Parallel()

		efforts := map[string]shared.ReasoningEffort{
			"gpt-5":      shared.ReasoningEffortMinimal,
			"gpt-5-mini": shared.ReasoningEffortMinimal,
			"o4-mini":    shared.ReasoningEffortLow,
			"o3":         shared.ReasoningEffortLow,
		}
		for model, want := range efforts {
			params := bizopenai.BuildParams(model, "prompt")

			assert.Equal(t, want, params.ReasoningEffort, model)
			assert.False(t, params.Temperature.Valid(), model)
		}
	})
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	client, err := bizopenai.NewClient("")

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Equal(t, bizextract.ECONFIG, bizextract.ErrorCode(err))
}

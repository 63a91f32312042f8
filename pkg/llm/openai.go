package llm

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const defaultTimeout = 60 * time.Second

// OpenAI talks to any OpenAI-compatible chat completion endpoint.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      zerolog.Logger
}

type Option func(*options)

type options struct {
	baseURL     string
	model       string
	temperature float32
	timeout     time.Duration
	httpClient  *http.Client
	logger      zerolog.Logger
}

func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

func WithModel(m string) Option { return func(o *options) { o.model = m } }

func WithTemperature(t float32) Option { return func(o *options) { o.temperature = t } }

// WithTimeout bounds the whole upstream call, including reading the body.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithHTTPClient replaces the HTTP client. The timeout option is ignored when set.
func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.httpClient = c } }

func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.logger = l } }

func NewOpenAI(apiKey string, opts ...Option) *OpenAI {
	o := options{
		model:       "gpt-4o",
		temperature: 0.7,
		timeout:     defaultTimeout,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}
	cfg.HTTPClient = guarded(httpClient)

	return &OpenAI{
		client:      openai.NewClientWithConfig(cfg),
		model:       o.model,
		temperature: o.temperature,
		logger:      o.logger,
	}
}

func (c *OpenAI) DescribeImage(ctx context.Context, systemPrompt, instruction, imageURL string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: imageURL}},
				},
			},
		},
		Temperature: wireTemperature(c.temperature),
	}

	c.logger.Debug().Str("model", c.model).Int("image_bytes", len(imageURL)).Msg("sending chat completion")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if upErr := upstreamError(err); upErr != nil {
			c.logger.Error().Int("status", upErr.StatusCode).Str("body", upErr.Body).Msg("AI API error")
			return "", upErr
		}
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	c.logger.Debug().Str("model", c.model).Msg("AI response received")
	return resp.Choices[0].Message.Content, nil
}

// GetModel returns the model being used by this client
func (c *OpenAI) GetModel() string {
	return c.model
}

func upstreamError(err error) *UpstreamError {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}
	return nil
}

// wireTemperature keeps an explicit zero on the wire. The request field is
// omitempty, so 0 would otherwise fall back to the provider's default.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

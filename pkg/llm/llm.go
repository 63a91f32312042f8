package llm

import (
	"context"
	"errors"
	"fmt"
)

// Vision answers a prompt about a single image.
type Vision interface {
	DescribeImage(ctx context.Context, systemPrompt, instruction, imageURL string) (string, error)
}

var (
	// ErrEmptyResponse is returned when the provider answered successfully but
	// without any text content.
	ErrEmptyResponse = errors.New("no content in AI response")

	// ErrMissingCredential is returned when the provider API key is not set.
	ErrMissingCredential = errors.New("API key is not configured")
)

// UpstreamError reports a non-success HTTP status from the provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Upstream error: %d", e.StatusCode)
}

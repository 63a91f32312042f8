package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/helmcode/flowchart-explainer/pkg/model"
)

// ErrNoExplanations is returned when the gateway answered without an explanation list.
var ErrNoExplanations = errors.New("No explanations received")

// Client calls a running analysis gateway.
type Client struct {
	endpoint string
	http     *http.Client
}

// New returns a client for the gateway at baseURL. When baseURL has no path the
// /analyze-flowchart route is used.
func New(baseURL string, timeout time.Duration) *Client {
	endpoint := strings.TrimRight(baseURL, "/")
	if !strings.Contains(strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://"), "/") {
		endpoint += "/analyze-flowchart"
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Analyze sends the data URL to the gateway and returns its explanation list.
func (c *Client) Analyze(ctx context.Context, dataURL string) ([]model.Explanation, error) {
	body, err := json.Marshal(model.AnalysisRequest{ImageBase64: dataURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out model.AnalysisResponse
	decodeErr := json.Unmarshal(respBytes, &out)
	if out.Error != "" {
		return nil, errors.New(out.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode gateway response: %w", decodeErr)
	}
	if out.Explanations == nil {
		return nil, ErrNoExplanations
	}
	return out.Explanations, nil
}

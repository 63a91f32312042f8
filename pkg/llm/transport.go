package llm

import (
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 4 << 10

// statusGuard fails every final response outside 2xx before the OpenAI client gets
// to decode it. The client only rejects statuses below 200 or from 400 up.
type statusGuard struct {
	next http.RoundTripper
}

func (g statusGuard) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := g.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// guarded returns a copy of c whose transport is wrapped in statusGuard.
func guarded(c *http.Client) *http.Client {
	next := c.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	out := *c
	out.Transport = statusGuard{next: next}
	return &out
}

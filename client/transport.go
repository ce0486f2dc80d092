package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/websetkit/websets-mcp/resilience"
)

// Response is the normalized success envelope returned to callers.
type Response struct {
	Data    []byte
	Status  int
	Headers http.Header
}

// Transport issues one HTTP exchange. Implementations return a Response for
// 2xx statuses, a *resilience.HTTPError for other statuses, and the raw
// transport error for connection-level failures. The context carries the
// per-attempt deadline.
type Transport interface {
	Send(ctx context.Context, method, url string, body []byte, headers http.Header) (*Response, error)
}

// httpTransport is the net/http-backed Transport.
type httpTransport struct {
	client *http.Client
}

func newHTTPTransport() *httpTransport {
	// Per-attempt deadlines come from the request context, not a client-wide
	// timeout, so a per-call override can exceed the default.
	return &httpTransport{client: &http.Client{}}
}

// Send implements Transport.
func (t *httpTransport) Send(ctx context.Context, method, url string, body []byte, headers http.Header) (*Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &resilience.HTTPError{
			Status: resp.StatusCode,
			Body:   data,
			Header: resp.Header,
		}
	}

	return &Response{
		Data:    data,
		Status:  resp.StatusCode,
		Headers: resp.Header,
	}, nil
}

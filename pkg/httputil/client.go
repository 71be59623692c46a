package httputil

import (
	"context"
	"net/http"
	"time"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/observability"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// Client sends requests through an http.Client and reports them to the
// registered [observability.HTTPHooks].
type Client struct {
	HTTP    *http.Client
	Headers map[string]string
}

// NewClient returns a client with [DefaultTimeout] and the given default
// headers. Pass nil for no default headers.
func NewClient(headers map[string]string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: DefaultTimeout},
		Headers: headers,
	}
}

// Do sends req with the client's default headers added, unless req already
// sets them. Transport failures are returned as retryable NETWORK_ERRORs,
// or TIMEOUT when the deadline passed; the status code is not checked.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	req = req.WithContext(ctx)

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "%s %s", req.Method, req.URL)
		}
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", req.Method, req.URL))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

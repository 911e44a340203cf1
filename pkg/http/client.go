// Package http wraps the standard client with the small surface the provider
// gateways need: JSON requests, request-id propagation and full access to the
// upstream status and body so callers can implement their own error mapping.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/KiwiAmenazante/DREMO/internal/log"
)

// DefaultHTTPClientWithRetry is an http client with retry behavior. The
// provider gateways must not retry, so only the verifier CLI uses it.
var DefaultHTTPClientWithRetry = NewClient(http.Client{
	Transport: &retryablehttp.RoundTripper{
		Client: retryablehttp.NewClient(),
	},
})

// Response carries the upstream status code and raw body. Non-2xx statuses
// are not errors at this level; gateways decide what they mean.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Client represents the default http client used to reach third party services
type Client struct {
	base http.Client
}

// NewClient returns a new instance of the custom client
func NewClient(c http.Client) *Client {
	return &Client{
		base: c,
	}
}

// Post sends a JSON post request to url with additional headers
func (c *Client) Post(ctx context.Context, url string, req []byte, headers map[string]string) (*Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(req))
	if err != nil {
		return nil, err
	}

	request.Header.Set("Content-Type", "application/json")
	addHeaders(ctx, request, headers)

	return executeRequest(ctx, c, request)
}

// Get sends a request to url with additional headers
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	addHeaders(ctx, request, headers)

	return executeRequest(ctx, c, request)
}

func addHeaders(ctx context.Context, r *http.Request, headers map[string]string) {
	r.Header.Set("Accept", "application/json")
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		r.Header.Set(middleware.RequestIDHeader, requestID)
	}
	for k, v := range headers {
		r.Header.Set(k, v)
	}
}

// executeRequest contains the common logic of request execution
func executeRequest(ctx context.Context, c *Client, r *http.Request) (*Response, error) {
	resp, err := c.base.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "executing request")
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error(ctx, "can not close body", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

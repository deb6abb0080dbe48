package httpclient

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
)

// TestHTTPClient serves requests directly through an http.Handler without a
// network listener.
type TestHTTPClient struct {
	config  Configurator
	handler http.Handler
}

// NewTestClient creates a new test HTTP client for the given handler
func NewTestClient(config Configurator, handler http.Handler) *TestHTTPClient {
	return &TestHTTPClient{
		config:  config,
		handler: handler,
	}
}

// DoRequest makes an HTTP request with the given options directly to the handler
func (c *TestHTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, string, error) {
	u, err := buildURL(c.config.GetServerURL(), opts)
	if err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, opts.Method, u, bytes.NewReader(opts.Body))
	if err != nil {
		return nil, "", ErrTransport.MsgErr("failed to create request", err)
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)

	body := rr.Body.Bytes()
	if err := checkStatus(rr.Code, body); err != nil {
		return nil, "", err
	}
	return body, rr.Header().Get("Location"), nil
}

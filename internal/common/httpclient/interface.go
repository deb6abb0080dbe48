package httpclient

import "context"

// HTTPClientInterface defines the interface for HTTP client implementations
type HTTPClientInterface interface {
	// DoRequest makes an HTTP request with the given options and returns the
	// response body and the Location header.
	DoRequest(ctx context.Context, opts RequestOptions) ([]byte, string, error)
}

// Configurator supplies the base URL of the catalog service.
type Configurator interface {
	GetServerURL() string
}

// Verify that the HTTPClient and TestHTTPClient implement the HTTPClientInterface
var _ HTTPClientInterface = &HTTPClient{}
var _ HTTPClientInterface = &TestHTTPClient{}

package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// RequestOptions contains options for making HTTP requests
type RequestOptions struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Body        []byte
}

// HTTPClient represents a client for making HTTP requests to the catalog service
type HTTPClient struct {
	config     Configurator
	httpClient *http.Client
}

// NewClient creates a new HTTP client using the provided configuration. A nil
// http.Client selects a default client without a timeout.
func NewClient(config Configurator, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{
		config:     config,
		httpClient: hc,
	}
}

// DoRequest makes an HTTP request with the given options
func (c *HTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, string, error) {
	u, err := buildURL(c.config.GetServerURL(), opts)
	if err != nil {
		return nil, "", err
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, opts.Method, u, body)
	if err != nil {
		return nil, "", ErrTransport.MsgErr("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Ctx(ctx).Debug().Str("method", opts.Method).Str("url", u).Msg("catalog request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", ErrTransport.Err(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", ErrTransport.MsgErr("failed to read response body", err)
	}
	if err := checkStatus(resp.StatusCode, respBody); err != nil {
		return nil, "", err
	}
	return respBody, resp.Header.Get("Location"), nil
}

// buildURL joins the base URL and the request path. Trailing slashes in the
// request path are significant to the catalog service and are kept.
func buildURL(base string, opts RequestOptions) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + "/" + strings.TrimLeft(opts.Path, "/"))
	if err != nil {
		return "", ErrTransport.MsgErr("invalid server URL", err)
	}
	if len(opts.QueryParams) > 0 {
		q := u.Query()
		for k, v := range opts.QueryParams {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// checkStatus treats every non-2xx status uniformly as a failure. The server
// message is extracted from either the catalog server or FastAPI error shape.
func checkStatus(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	msg := ""
	if gjson.ValidBytes(body) {
		for _, key := range []string{"error", "detail", "message"} {
			if r := gjson.GetBytes(body, key); r.Exists() {
				msg = r.String()
				break
			}
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return ErrStatus.MsgErr(fmt.Sprintf("catalog service returned status %d", code), &HTTPError{
		StatusCode: code,
		Message:    msg,
	})
}

// CollectionPath returns the path of a resource collection, e.g. "/gpus/".
func CollectionPath(resourceType string) string {
	return "/" + strings.Trim(resourceType, "/") + "/"
}

// ItemPath returns the path of a single resource, e.g. "/gpus/12".
func ItemPath(resourceType string, id string) string {
	return "/" + strings.Trim(resourceType, "/") + "/" + strings.Trim(id, "/")
}

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/memory"
)

func newTestServer(t *testing.T) *CatalogServer {
	t.Helper()
	s, err := CreateNewServer(memory.New())
	require.NoError(t, err, "create new server")
	// Mount Handlers
	s.MountHandlers()
	return s
}

func executeTestRequest(t *testing.T, s *CatalogServer, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func checkHeader(t *testing.T, h http.Header) {
	expected := "application/json"
	got := h.Get("Content-Type")
	assert.Equal(t, expected, got, "Content-Type expected %s, got %s", expected, got)
	assert.NotEmpty(t, h.Get("X-Request-ID"), "No Request Id")
}

func compareJson(t *testing.T, expected any, actual string) {
	j, err := json.Marshal(expected)
	assert.NoError(t, err, "json marshal")
	assert.JSONEq(t, string(j), actual, "Expected: %v\n Got: %v\n", expected, actual)
}

func setRequestBodyAndHeader(t *testing.T, req *http.Request, data interface{}) {
	// Marshal the data into JSON
	// check if the input itsef is json
	var jsonData []byte
	if s, ok := data.(string); ok {
		jsonData = []byte(s)
	} else if b, ok := data.([]byte); ok {
		jsonData = b
	} else {
		var err error
		jsonData, err = json.Marshal(data)
		assert.NoError(t, err, "Failed to marshal data into JSON")
	}

	// Set the request body to the JSON
	req.Body = io.NopCloser(bytes.NewReader(jsonData))
	req.ContentLength = int64(len(jsonData))

	// Set the Content-Type header to application/json
	req.Header.Set("Content-Type", "application/json")
}

// do sends method on path with an optional body.
func do(t *testing.T, s *CatalogServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	if body != nil {
		setRequestBodyAndHeader(t, req, body)
	}
	return executeTestRequest(t, s, req)
}

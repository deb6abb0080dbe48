package httpx

import (
	"net/http"
)

// ResponseWriter is a wrapper around http.ResponseWriter that records the
// status and the number of body bytes written.
type ResponseWriter struct {
	http.ResponseWriter
	written bool
	status  int
	bytes   int
}

// NewResponseWriter creates a new ResponseWriter
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

// WriteHeader implements http.ResponseWriter
func (rw *ResponseWriter) WriteHeader(code int) {
	if rw.written {
		// Do not override if already written
		return
	}
	rw.status = code
	rw.written = true
	rw.ResponseWriter.WriteHeader(code)
}

// Write implements http.ResponseWriter
func (rw *ResponseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Written returns true if headers or body were written
func (rw *ResponseWriter) Written() bool {
	return rw.written
}

// Status returns the status code (default 200 if not set)
func (rw *ResponseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

// BytesWritten returns the size of the body written so far.
func (rw *ResponseWriter) BytesWritten() int {
	return rw.bytes
}

// Flush implements http.Flusher if underlying writer supports it
func (rw *ResponseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *ResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

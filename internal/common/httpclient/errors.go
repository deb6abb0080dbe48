package httpclient

import (
	"fmt"

	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
)

var (
	ErrRequest   apperrors.Error = apperrors.New("catalog service request failed").SetExpandError(true)
	ErrTransport apperrors.Error = ErrRequest.New("unable to reach catalog service")
	ErrStatus    apperrors.Error = ErrRequest.New("catalog service returned an error")
	ErrDecode    apperrors.Error = ErrRequest.New("unable to decode catalog service response")
)

// HTTPError represents an error response from the server with a status code
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

package dberror

import (
	"net/http"

	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
)

var (
	ErrDatabase      apperrors.Error = apperrors.New("db error").SetStatusCode(http.StatusInternalServerError)
	ErrAlreadyExists apperrors.Error = ErrDatabase.New("already exists").SetStatusCode(http.StatusConflict)
	ErrNotFound      apperrors.Error = ErrDatabase.New("not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidInput  apperrors.Error = ErrDatabase.New("invalid input").SetStatusCode(http.StatusBadRequest)
	// ErrMissingReference is returned when a row points at a manufacturer or
	// gpu that does not exist.
	ErrMissingReference apperrors.Error = ErrInvalidInput.New("referenced record does not exist")
	ErrUnavailable      apperrors.Error = ErrDatabase.New("database unavailable").SetStatusCode(http.StatusServiceUnavailable)
)

package apperrors

import "strings"

// appError implements the apperrors.Error interface
type appError struct {
	msg           string
	base          Error
	wrappedErrors []error
	statuscode    int
	expandError   bool
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message followed by the wrapped causes when expansion
// is enabled on the error or on one of its bases.
func (e *appError) ErrorAll() string {
	if !e.expands() || len(e.wrappedErrors) == 0 {
		return e.msg
	}
	causes := make([]string, 0, len(e.wrappedErrors))
	for _, err := range e.wrappedErrors {
		causes = append(causes, err.Error())
	}
	return e.msg + ": " + strings.Join(causes, ";")
}

func (e *appError) expands() bool {
	if e.expandError {
		return true
	}
	if b, ok := e.base.(*appError); ok {
		return b.expands()
	}
	return false
}

func (e *appError) Unwrap() []error {
	return e.wrappedErrors
}

// derive returns a child of e that carries the same status code.
func (e *appError) derive(msg string) *appError {
	return &appError{
		msg:        msg,
		statuscode: e.statuscode,
		base:       e,
	}
}

func (e *appError) New(msg string) Error {
	return e.derive(msg)
}

func (e *appError) Msg(msg string) Error {
	return e.derive(msg)
}

func (e *appError) MsgErr(msg string, err ...error) Error {
	d := e.derive(msg)
	d.wrappedErrors = append(d.wrappedErrors, err...)
	return d
}

func (e *appError) Err(err ...error) Error {
	d := e.derive(e.msg)
	d.wrappedErrors = append(d.wrappedErrors, err...)
	return d
}

func (e *appError) Is(target error) bool {
	if e == target || e.base == target {
		return true
	}
	if e.base != nil && e.base.Is(target) {
		return true
	}
	for _, err := range e.wrappedErrors {
		if err == target {
			return true
		}
	}
	return false
}

func (e *appError) SetExpandError(expand bool) Error {
	e.expandError = expand
	return e
}

func (e *appError) SetStatusCode(code int) Error {
	e.statuscode = code
	return e
}

func (e *appError) StatusCode() int {
	return e.statuscode
}

func New(msg string) Error {
	return &appError{
		msg: msg,
	}
}

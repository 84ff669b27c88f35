package core

import "github.com/pkg/errors"

// FieldError ties a rejection message to one field of a request payload.
type FieldError struct {
	Field string
	Error string
}

// ValidationError rejects a request or CLI input. Fields carries the
// per-field messages the HTTP error handler renders as a JSON object;
// when empty, Err alone describes the problem.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks errors that must take the API server down instead of
// being reported to the client, e.g. a lost database connection.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err (at any wrap depth) asks for a shutdown.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

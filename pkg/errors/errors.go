package errors

import (
	"fmt"
	"net/http"
)

// Error represents a domain error with additional context
type Error struct {
	Code		string	`json:"code"`
	Message		string	`json:"message"`
	HTTPStatus	int	`json:"-"`
	Err		error	`json:"-"`
	Details		map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface for error chaining
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails returns a copy of e carrying an extra detail key. The
// receiver is never mutated, since most *Error values are shared package
// sentinels accessed from many goroutines at once.
func (e *Error) WithDetails(key string, value interface{}) *Error {
	cp := *e
	cp.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

// Wrap wraps an underlying error with this domain error
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Code:		e.Code,
		Message:	e.Message,
		HTTPStatus:	e.HTTPStatus,
		Err:		err,
		Details:	e.Details,
	}
}

// Input-shaped errors shared by every entity manager. Not-found is
// deliberately not among them: an absent identity or field is a
// sentinel result (ok=false), never an error.
var (
	ErrValidation = &Error{
		Code:		"VALIDATION_ERROR",
		Message:	"Validation failed",
		HTTPStatus:	http.StatusBadRequest,
	}

	ErrAlreadyExists = &Error{
		Code:		"ALREADY_EXISTS",
		Message:	"Resource already exists",
		HTTPStatus:	http.StatusConflict,
	}
)

package errors

import (
	"errors"
)

// Standard sentinel errors. Services and repositories mark their errors with
// one of these so callers can classify failures without string matching.
var (
	ErrValidation       = NewInternalError("validation_error")
	ErrNotFound         = NewInternalError("not_found")
	ErrAlreadyExists    = NewInternalError("already_exists")
	ErrInvalidOperation = NewInternalError("invalid_operation")
	ErrPermissionDenied = NewInternalError("permission_denied")
	ErrHTTPClient       = NewInternalError("http_client_error")
	ErrDatabase         = NewInternalError("database_error")
	ErrSystem           = NewInternalError("system_error")
	ErrInternal         = NewInternalError("internal_error")
)

// InternalError is the base error type used for sentinel errors.
type InternalError struct {
	code string
}

func NewInternalError(code string) *InternalError {
	return &InternalError{code: code}
}

func (e *InternalError) Error() string {
	return e.code
}

// Code returns the machine readable code of the sentinel.
func (e *InternalError) Code() string {
	return e.code
}

// Is checks whether err is or wraps the given sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience re-export of errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorBuilder provides a fluent API for constructing rich errors that wrap a
// sentinel. A builder is itself an error, so it can be returned directly, but
// the usual pattern is to finish the chain with Mark:
//
//	return ierr.NewError("subscription not found").
//		WithHint("The subscription may have been deleted").
//		WithReportableDetails(map[string]interface{}{"subscription_id": id}).
//		Mark(ierr.ErrNotFound)
type ErrorBuilder struct {
	message  string
	hint     string
	details  map[string]interface{}
	cause    error
	sentinel error
}

// NewError starts building an error with the given message.
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{message: message}
}

// NewErrorf starts building an error with a formatted message.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return &ErrorBuilder{message: fmt.Sprintf(format, args...)}
}

// WithError starts building an error that wraps an underlying cause.
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{cause: err}
}

// WithHint attaches a human readable hint suitable for API responses.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hint = hint
	return b
}

// WithHintf attaches a formatted hint.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details that are safe to expose
// to API clients.
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.details = details
	return b
}

// Mark finalizes the builder against a sentinel error and returns it.
func (b *ErrorBuilder) Mark(sentinel error) error {
	b.sentinel = sentinel
	return b
}

func (b *ErrorBuilder) Error() string {
	switch {
	case b.message != "" && b.cause != nil:
		return fmt.Sprintf("%s: %s", b.message, b.cause.Error())
	case b.message != "":
		return b.message
	case b.cause != nil:
		return b.cause.Error()
	case b.sentinel != nil:
		return b.sentinel.Error()
	default:
		return "unknown error"
	}
}

// Unwrap exposes the wrapped cause and sentinel to errors.Is / errors.As.
func (b *ErrorBuilder) Unwrap() []error {
	var wrapped []error
	if b.cause != nil {
		wrapped = append(wrapped, b.cause)
	}
	if b.sentinel != nil {
		wrapped = append(wrapped, b.sentinel)
	}
	return wrapped
}

// Hint returns the hint attached to err, if any.
func Hint(err error) string {
	var b *ErrorBuilder
	if errors.As(err, &b) {
		return b.hint
	}
	return ""
}

// ReportableDetails returns the structured details attached to err, if any.
func ReportableDetails(err error) map[string]interface{} {
	var b *ErrorBuilder
	if errors.As(err, &b) {
		return b.details
	}
	return nil
}

// Package apperr is the error taxonomy shared by services and handlers.
// Services return *Error values; handlers translate them into HTTP responses
// with a single call.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the request boundary.
type Kind string

const (
	KindInternal            Kind = "internal_error"
	KindValidation          Kind = "validation_error"
	KindInvalidRequest      Kind = "invalid_request"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindUnauthorized        Kind = "unauthorized"
	KindMalformedGeneration Kind = "malformed_generation"
	KindGenerationTimeout   Kind = "generation_timeout"
	KindGenerationUpstream  Kind = "generation_upstream"
	KindPersistence         Kind = "persistence_error"
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidRequest, KindMalformedGeneration:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindGenerationTimeout:
		return http.StatusGatewayTimeout
	case KindGenerationUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error.
//
// Message is safe to show to callers. Detail carries extra diagnostic text
// that is also returned to the caller (only used for malformed generator
// output). Err is the underlying cause and is never serialized.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status is shorthand for e.Kind.Status().
func (e *Error) Status() int { return e.Kind.Status() }

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func InvalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

// NotFound deliberately carries no identifiers: a missing record and a record
// owned by someone else must produce the same body.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func MalformedGeneration(detail string, err error) *Error {
	return &Error{
		Kind:    KindMalformedGeneration,
		Message: "generated plan could not be decoded",
		Detail:  detail,
		Err:     err,
	}
}

func GenerationTimeout(err error) *Error {
	return &Error{Kind: KindGenerationTimeout, Message: "plan generation timed out", Err: err}
}

func GenerationUpstream(err error) *Error {
	return &Error{Kind: KindGenerationUpstream, Message: "plan generation failed", Err: err}
}

func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "could not save plan", Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// From returns the *Error in err's chain, wrapping anything unclassified as
// KindInternal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// KindOf returns the kind of err, or KindInternal when err is unclassified.
func KindOf(err error) Kind {
	return From(err).Kind
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

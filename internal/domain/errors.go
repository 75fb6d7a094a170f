package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so callers and the HTTP layer can branch on
// it without string matching.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindNotAvailable Kind = "not_available"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// Error is the error type returned by domain and application code for every
// expected failure. Unexpected failures are wrapped plain errors.
type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string { return e.message }

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// NewNotFoundError reports that a referenced entity does not exist.
func NewNotFoundError(entity, id string) *Error {
	return &Error{kind: KindNotFound, message: fmt.Sprintf("%s with id %s not found", entity, id)}
}

// NewValidationError reports malformed or inconsistent input.
func NewValidationError(message string) *Error {
	return &Error{kind: KindValidation, message: message}
}

// NewNotAvailableError reports that an item cannot be booked right now.
func NewNotAvailableError(message string) *Error {
	return &Error{kind: KindNotAvailable, message: message}
}

// NewForbiddenError reports that the actor lacks the required relationship to
// the resource.
func NewForbiddenError(message string) *Error {
	return &Error{kind: KindForbidden, message: message}
}

// NewConflictError reports a lost race or uniqueness violation.
func NewConflictError(message string) *Error {
	return &Error{kind: KindConflict, message: message}
}

// KindOf extracts the Kind from err, or KindInternal if err is not a domain
// error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind()
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

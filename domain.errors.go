package main

import (
	"errors"
	"fmt"
)

// The catalog exposes exactly two recoverable failure kinds to callers:
// a request carrying bad input (including uniqueness conflicts) and a
// reference to a record that does not exist. Everything else is an
// infrastructure fault surfaced as a generic internal failure.

// NotFoundError reports a missing record for a given resource kind.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

var (
	ErrBookNotFound      = &NotFoundError{Resource: "book"}
	ErrAuthorNotFound    = &NotFoundError{Resource: "author"}
	ErrGenreNotFound     = &NotFoundError{Resource: "genre"}
	ErrPublisherNotFound = &NotFoundError{Resource: "publisher"}
)

// InvalidRequestError reports input the caller can fix and retry. The
// violations list is empty for conflicts like duplicated natural keys.
type InvalidRequestError struct {
	Message    string
	Violations []Violation
}

func (e *InvalidRequestError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %d violation(s)", e.Message, len(e.Violations))
}

// NewInvalidRequestError builds an invalid-request failure from a message.
func NewInvalidRequestError(message string, violations []Violation) *InvalidRequestError {
	return &InvalidRequestError{Message: message, Violations: violations}
}

// ErrNothingToUpdate signals an update payload without any defined field.
// It never reaches storage and the caller gets a no-op report instead of
// a write or a not-found failure.
var ErrNothingToUpdate = errors.New("nothing to update")

// IntegrityError reports a stored row which failed normalization. This
// means the database content was corrupted or modified out of band. It
// is an infrastructure fault, never exposed with details to the caller.
type IntegrityError struct {
	Entity     string
	Violations []Violation
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("invalid %s row in storage: %d violation(s)", e.Entity, len(e.Violations))
}

func newIntegrityError(entity string, violations []Violation) *IntegrityError {
	return &IntegrityError{Entity: entity, Violations: violations}
}

// Package domain defines the error taxonomy shared by services and
// handlers. Two kinds cover almost everything: NotFoundError for absent
// entities and for callers with no relation to a resource, and
// ValidationError for rule violations. ConflictError exists only for
// duplicate user emails. Handlers translate these to 404, 400 and 409.
package domain

import "errors"

// NotFoundError reports a missing entity or a caller who has no
// relation to the requested resource. Both map to 404; the original
// API deliberately does not distinguish "absent" from "not yours".
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError reports a domain-rule violation such as a bad time
// window, an unavailable item or an illegal status transition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness violation (duplicate user email).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewNotFound builds a NotFoundError with the given message.
func NewNotFound(msg string) error { return &NotFoundError{Message: msg} }

// NewValidation builds a ValidationError with the given message.
func NewValidation(msg string) error { return &ValidationError{Message: msg} }

// NewConflict builds a ConflictError with the given message.
func NewConflict(msg string) error { return &ConflictError{Message: msg} }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

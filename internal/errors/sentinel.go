package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a required property has no usable value, or a
	// config file does not match its schema.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates a file could not be read or written.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a file or property was not found.
	ErrNotFound = errors.New("not found")

	// ErrSource indicates a source failed while retrieving a value.
	ErrSource = errors.New("source failure")
)

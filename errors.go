package facerelay

import "errors"

var (
	// ErrNotFound is returned when there is nothing to return yet
	ErrNotFound = errors.New("not found")
	// ErrNoFile is returned when the latest record was uploaded without a file
	ErrNoFile = errors.New("no file stored")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

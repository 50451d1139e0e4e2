package http

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidForm is returned when a request body cannot be read as a form
	// or lacks a required field.
	ErrInvalidForm = errors.New("invalid form")
	// ErrTooLarge is returned when a request body exceeds the upload limit.
	ErrTooLarge = errors.New("request body too large")
)

// MissingFieldError names a required form field absent from the request.
// It matches ErrInvalidForm.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing field " + strconv.Quote(e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrInvalidForm
}

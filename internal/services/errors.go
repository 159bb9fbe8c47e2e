package services

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("invalid employee number or password")
	ErrConflict        = errors.New("email is already registered")
	ErrStudentNotFound = errors.New("student not found")
	// ErrServer marks failures of the booking's hard dependencies. Callers
	// see it together with the underlying cause.
	ErrServer = errors.New("server error")
)

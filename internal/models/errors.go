// Package models defines data structures for finboard
package models

import "errors"

// Sentinel error kinds. Services wrap these with fmt.Errorf("...: %w", ...)
// and the HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("already exists")
)

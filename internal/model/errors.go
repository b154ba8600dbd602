package model

import "errors"

var (
	// ErrNotFound signals the referenced user/board/item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a uniqueness violation (e.g. user already registered).
	ErrConflict = errors.New("conflict")
	// ErrValidation signals input that fails a local rule; no store call was made.
	ErrValidation = errors.New("validation error")
	// ErrUnavailable signals the store (or the platform behind it) could not be
	// reached or returned a server fault. Calls are attempted once, never retried.
	ErrUnavailable = errors.New("content store unavailable")
)

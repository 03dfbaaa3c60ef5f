package domain

import "errors"

var (
	// ErrNotFound signals a missing resource (book key or index).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidRequest signals a request rejected before reaching the engine.
	ErrInvalidRequest = errors.New("invalid request")
)

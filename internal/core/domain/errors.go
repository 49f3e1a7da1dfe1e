package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown storage backend, PDF engine or format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Block rejection causes.

	// ErrMalformedHead indicates a block does not start with two dates and a body.
	ErrMalformedHead = errors.New("malformed row head")

	// ErrMissingTail indicates a block does not end with six numeric columns.
	ErrMissingTail = errors.New("missing numeric tail")

	// ErrNoSymbol indicates no security symbol could be found before the numeric tail.
	ErrNoSymbol = errors.New("no security symbol")
)

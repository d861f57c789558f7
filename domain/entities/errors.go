package entities

import "errors"

var (
	// ErrElementNotFound is returned when a required selector match is
	// absent before a click/fill action or a strict read
	ErrElementNotFound = errors.New("element not found")

	// ErrInvalidDefinition is returned at build time when a definition
	// slot collides with a reserved key or is malformed
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrNoExecution is returned when an operation runs before any
	// execution context was attached or set as the process default
	ErrNoExecution = errors.New("no execution context")
)

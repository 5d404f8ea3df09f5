package core

import "errors"

// Sentinel errors shared across the parser, the engine and the CLI.
var (
	// ErrScopeNotFound is returned when a scope id does not resolve to a scope.
	ErrScopeNotFound = errors.New("scope not found")

	// ErrUnknownRule is returned when configuration names a rule nobody registered.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrInvalidSeverity is returned for unrecognized rule levels.
	ErrInvalidSeverity = errors.New("invalid severity")
)

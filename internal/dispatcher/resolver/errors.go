package resolver

import "errors"

// Registry errors.
var (
	// ErrUnknownCommand indicates a motion or action name with no resolver.
	ErrUnknownCommand = errors.New("resolver: unknown command")

	// ErrDuplicateCommand indicates a name registered twice.
	ErrDuplicateCommand = errors.New("resolver: duplicate command")
)

package execctx

import "errors"

// Context validation errors.
var (
	// ErrEmptyCommand indicates neither a motion nor an action resolved to a command.
	ErrEmptyCommand = errors.New("execution context: nothing to run")

	// ErrMissingMotion indicates an action that needs a motion was run without one.
	ErrMissingMotion = errors.New("execution context: action requires motion or selection")
)

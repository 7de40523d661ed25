package plugin

import (
	"errors"
	"fmt"
)

var (
	// ErrStateClosed is returned after Close.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrBadResult indicates a resolver returned something other than a
	// table or nil.
	ErrBadResult = errors.New("resolver returned a bad result")
)

// ScriptError wraps a failure loading a script.
type ScriptError struct {
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("plugin %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

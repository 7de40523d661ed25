package app

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownHostCommand is returned for a command name the document
	// does not implement.
	ErrUnknownHostCommand = errors.New("unknown host command")

	// ErrUnknownStep is returned for a motion or action step the document
	// does not implement.
	ErrUnknownStep = errors.New("unknown step")

	// ErrMissingContext is returned for a vi_run invocation without a
	// context.
	ErrMissingContext = errors.New("run invocation without context")

	// ErrNoActiveDocument indicates no document has focus.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrDocumentNotFound indicates a surface id is not open.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoFilePath indicates a document without a path was saved.
	ErrNoFilePath = errors.New("document has no file path")
)

// FileError is a failed file operation on a document.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

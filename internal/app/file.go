package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/vicore/internal/input/state"
)

// OpenFile loads path into a new document. A missing file gives an empty
// document that Save creates.
func OpenFile(session *state.Session, path string, status state.StatusDisplay, opts ...DocumentOption) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	d := NewDocument(session, filepath.Base(path), string(data), status, opts...)
	d.path = path
	d.saved = d.buf.Revision()
	return d, nil
}

// Path returns the file backing the document, "" for a scratch buffer.
func (d *Document) Path() string { return d.path }

// IsModified reports whether the buffer changed since it was loaded or
// saved.
func (d *Document) IsModified() bool {
	return d.buf.Revision() != d.saved
}

// Save writes the buffer to its file.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoFilePath
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the buffer to path and makes it the document's file.
func (d *Document) SaveAs(path string) error {
	if err := os.WriteFile(path, []byte(d.buf.Text()), 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	d.path = path
	d.name = filepath.Base(path)
	d.saved = d.buf.Revision()
	d.log.Info("document saved", "path", path)
	return nil
}

// Save writes the focused document, or the document behind an open
// prompt, to its file.
func (e *Editor) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.active
	if e.prompt != nil {
		doc = e.prompt.owner
	}
	if doc == nil {
		return ErrNoActiveDocument
	}
	return doc.Save()
}

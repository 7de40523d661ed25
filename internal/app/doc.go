// Package app runs the modal interpreter against real buffers.
//
// A Document is one editing surface. It implements state.View: chords
// resolved by the interpreter arrive as invocations, and the document
// applies their motion step, then their action step, records the result
// in its history and enters the follow-up mode. Host commands such as
// insert, left_delete and exit_insert_mode are run the same way.
//
// An Editor holds the open documents, the session they share, the focus
// restorer and the search prompt.
package app

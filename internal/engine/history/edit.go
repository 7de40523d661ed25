package history

import (
	"github.com/dshills/vicore/internal/engine/buffer"
)

// Edit is one text change: the text Removed at Offset was replaced by
// Inserted.
type Edit struct {
	Offset   int
	Removed  string
	Inserted string
}

// Inverse returns the edit that undoes e.
func (e Edit) Inverse() Edit {
	return Edit{Offset: e.Offset, Removed: e.Inserted, Inserted: e.Removed}
}

// Apply performs e on buf.
func (e Edit) Apply(buf *buffer.Buffer) error {
	r := buffer.Range{Start: e.Offset, End: e.Offset + len([]rune(e.Removed))}
	return buf.Replace(r, e.Inserted)
}

// applyAll performs edits in order.
func applyAll(buf *buffer.Buffer, edits []Edit) error {
	for _, e := range edits {
		if err := e.Apply(buf); err != nil {
			return err
		}
	}
	return nil
}

// revertAll undoes edits, newest first.
func revertAll(buf *buffer.Buffer, edits []Edit) error {
	for i := len(edits) - 1; i >= 0; i-- {
		if err := edits[i].Inverse().Apply(buf); err != nil {
			return err
		}
	}
	return nil
}

package app

import (
	"strings"

	"github.com/dshills/vicore/internal/input/mode"
)

// Position is a row and column in runes.
type Position struct {
	Row, Col int
}

// Frame is what a renderer draws: the focused document behind any open
// prompt, and the status line.
type Frame struct {
	Name     string
	Modified bool
	Lines    []string
	Mode     mode.Mode
	Cursor   Position
	Style    mode.CursorStyle

	// Selected is set in the visual modes. SelStart is inclusive and
	// SelEnd exclusive.
	Selected         bool
	SelStart, SelEnd Position

	Status string

	// Prompting is set while the search prompt is open; Prompt holds its
	// label and text and the cursor belongs on the status line.
	Prompting bool
	Prompt    string
}

// Frame captures the current screen contents.
func (e *Editor) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	f := Frame{Status: e.status}
	doc := e.active
	if e.prompt != nil {
		f.Prompting = true
		f.Prompt = e.prompt.prefix + e.prompt.doc.Text()
		doc = e.prompt.owner
	}
	if doc == nil {
		return f
	}

	f.Name = doc.name
	f.Modified = doc.IsModified()
	f.Lines = strings.Split(doc.buf.Text(), "\n")
	f.Mode = doc.Mode()
	f.Style = doc.cursorStyle
	row, col := doc.buf.RowCol(doc.cursorPos())
	f.Cursor = Position{Row: row, Col: col}

	if f.Mode.IsVisual() && !doc.sel.IsEmpty() {
		r := doc.sel.Range()
		f.Selected = true
		sr, sc := doc.buf.RowCol(r.Start)
		er, ec := doc.buf.RowCol(r.End)
		f.SelStart = Position{Row: sr, Col: sc}
		f.SelEnd = Position{Row: er, Col: ec}
	}
	return f
}

// Contains reports whether the cell at row, col is selected.
func (f Frame) Contains(row, col int) bool {
	if !f.Selected {
		return false
	}
	p := Position{Row: row, Col: col}
	return !p.before(f.SelStart) && p.before(f.SelEnd)
}

func (p Position) before(o Position) bool {
	return p.Row < o.Row || (p.Row == o.Row && p.Col < o.Col)
}

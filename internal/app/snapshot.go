package app

import (
	"github.com/tidwall/sjson"

	"github.com/dshills/vicore/internal/input/vim"
)

// Snapshot renders the observable state of the focused document as JSON.
func (e *Editor) Snapshot() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return "", ErrNoActiveDocument
	}
	return e.active.snapshot(e.status)
}

// Snapshot renders the observable state of the document as JSON.
func (d *Document) Snapshot() (string, error) {
	return d.snapshot("")
}

func (d *Document) snapshot(status string) (string, error) {
	pos := d.cursorPos()
	row, col := d.buf.RowCol(pos)
	p := d.st.Pending()

	fields := []struct {
		path  string
		value any
	}{
		{"surface", d.id},
		{"name", d.name},
		{"path", d.path},
		{"mode", d.st.Mode().String()},
		{"status", status},
		{"text", d.buf.Text()},
		{"modified", d.IsModified()},
		{"cursor.offset", pos},
		{"cursor.row", row},
		{"cursor.col", col},
		{"selection.anchor", d.sel.Anchor},
		{"selection.head", d.sel.Head},
		{"pending.action", string(p.Action())},
		{"pending.motion", string(p.Motion())},
		{"pending.count", p.Count()},
		{"undo", d.history.UndoCount()},
		{"blinks", d.blinks},
	}

	json := "{}"
	var err error
	for _, f := range fields {
		if json, err = sjson.Set(json, f.path, f.value); err != nil {
			return "", err
		}
	}

	registers := []struct {
		path string
		name rune
	}{
		{"registers.unnamed", vim.RegisterUnnamed},
		{"registers.last_inserted", vim.RegisterLastInserted},
		{"registers.search", vim.RegisterSearch},
	}
	for _, r := range registers {
		reg, ok := d.session.Registers.Get(r.name)
		if !ok {
			continue
		}
		if json, err = sjson.Set(json, r.path, reg.Content); err != nil {
			return "", err
		}
	}

	if rec, ok := d.session.Repeat(); ok {
		if json, err = sjson.Set(json, "repeat.command", rec.Invocation.Command); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, "repeat.times", rec.Times); err != nil {
			return "", err
		}
	}
	return json, nil
}

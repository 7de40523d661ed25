package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/history"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/state"
	"github.com/dshills/vicore/internal/logging"
)

// Document is one editing surface: a buffer with a selection, an undo
// history and the interpreter state driving it.
//
// In the visual modes the selection covers the character under the cursor,
// so a forward selection ends one past the cursor.
type Document struct {
	id     string
	name   string
	path   string
	saved  uint64
	widget bool

	buf        *buffer.Buffer
	sel        buffer.Selection
	history    *history.History
	session    *state.Session
	st         *state.State
	patterns   *PatternCache
	shiftWidth int
	log        *logging.Logger
	onBlink    func()

	commandMode bool
	cursorStyle mode.CursorStyle
	overwrite   bool
	overlays    map[string]bool
	blinks      int

	// vanchor and vcursor are the anchor and cursor characters of a
	// visual selection.
	vanchor, vcursor int

	// origin is the cursor before the running command's motion.
	origin int

	// typed is the text entered since the surface last entered a
	// text-entry mode, and insertWhere how that mode was entered.
	typed       strings.Builder
	insertWhere string

	// edits collects the changes of the command being run.
	edits []history.Edit
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithShiftWidth sets the indent width used by > and <.
func WithShiftWidth(n int) DocumentOption {
	return func(d *Document) {
		if n > 0 {
			d.shiftWidth = n
		}
	}
}

// WithHistorySize limits the undo history.
func WithHistorySize(n int) DocumentOption {
	return func(d *Document) {
		d.history = history.NewHistory(n)
	}
}

// WithPatternCache shares a compiled pattern cache between documents.
func WithPatternCache(c *PatternCache) DocumentOption {
	return func(d *Document) {
		if c != nil {
			d.patterns = c
		}
	}
}

// WithBlinkFunc sets a callback run when the document blinks.
func WithBlinkFunc(f func()) DocumentOption {
	return func(d *Document) {
		d.onBlink = f
	}
}

// WithDocumentLogger sets the document logger.
func WithDocumentLogger(l *logging.Logger) DocumentOption {
	return func(d *Document) {
		if l != nil {
			d.log = l
		}
	}
}

// AsWidget marks the document as an auxiliary input surface.
func AsWidget() DocumentOption {
	return func(d *Document) {
		d.widget = true
	}
}

// NewDocument creates a document holding text and attaches its state to
// session. Status text goes to status.
func NewDocument(session *state.Session, name, text string, status state.StatusDisplay, opts ...DocumentOption) *Document {
	d := &Document{
		name:       name,
		buf:        buffer.NewFromString(text),
		sel:        buffer.Caret(0),
		history:    history.NewHistory(history.DefaultMaxEntries),
		session:    session,
		shiftWidth: 4,
		overlays:   make(map[string]bool),
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.patterns == nil {
		d.patterns = NewPatternCache()
	}
	d.saved = d.buf.Revision()
	d.st = state.New(session, d, d.history, status)
	d.id = d.st.ID()
	d.log = d.log.WithComponent("app").WithField("surface", d.id)
	d.st.Controller().OnChange(d.modeChanged)
	return d
}

// ID returns the surface identifier.
func (d *Document) ID() string { return d.id }

// Name returns the display name.
func (d *Document) Name() string { return d.name }

// Text returns the buffer contents.
func (d *Document) Text() string { return d.buf.Text() }

// Buffer returns the underlying buffer.
func (d *Document) Buffer() *buffer.Buffer { return d.buf }

// State returns the interpreter state of the document.
func (d *Document) State() *state.State { return d.st }

// History returns the command history.
func (d *Document) History() *history.History { return d.history }

// Mode returns the current mode.
func (d *Document) Mode() mode.Mode { return d.st.Mode() }

// Cursor returns the offset of the cursor.
func (d *Document) Cursor() int { return d.cursorPos() }

// Selection returns the current selection.
func (d *Document) Selection() buffer.Selection { return d.sel }

// Select replaces the selection. Offsets are clamped to the buffer.
func (d *Document) Select(anchor, head int) {
	n := d.buf.Len()
	d.sel = buffer.Selection{Anchor: clamp(anchor, 0, n), Head: clamp(head, 0, n)}
}

// Blinks returns how many times the document has blinked.
func (d *Document) Blinks() int { return d.blinks }

// CommandMode reports whether keys are commands rather than text.
func (d *Document) CommandMode() bool { return d.commandMode }

// CursorStyle returns the cursor shape to draw.
func (d *Document) CursorStyle() mode.CursorStyle { return d.cursorStyle }

// HasOverlay reports whether the named overlay is shown.
func (d *Document) HasOverlay(name string) bool { return d.overlays[name] }

// Selections implements mode.Surface.
func (d *Document) Selections() []buffer.Selection {
	return []buffer.Selection{d.sel}
}

// RowCol implements mode.Surface.
func (d *Document) RowCol(offset int) (int, int) { return d.buf.RowCol(offset) }

// SetCommandMode implements mode.Surface.
func (d *Document) SetCommandMode(on bool) { d.commandMode = on }

// SetCursorStyle implements mode.Surface.
func (d *Document) SetCursorStyle(s mode.CursorStyle) { d.cursorStyle = s }

// Overwrite implements mode.Surface.
func (d *Document) Overwrite() bool { return d.overwrite }

// SetOverwrite implements mode.Surface.
func (d *Document) SetOverwrite(on bool) { d.overwrite = on }

// EraseOverlay implements mode.Surface.
func (d *Document) EraseOverlay(name string) { delete(d.overlays, name) }

// GlueMarkedUndoGroups implements mode.Surface.
func (d *Document) GlueMarkedUndoGroups() { d.history.GlueMarkedGroups() }

// IsWidget implements state.View.
func (d *Document) IsWidget() bool { return d.widget }

// MarkUndoGroupsForGluing implements state.View.
func (d *Document) MarkUndoGroupsForGluing() { d.history.MarkGroupsForGluing() }

// Blink implements state.View.
func (d *Document) Blink() {
	d.blinks++
	if d.onBlink != nil {
		d.onBlink()
	}
}

// Run implements state.View.
func (d *Document) Run(inv execctx.Invocation) error {
	switch inv.Command {
	case execctx.RunCommand:
		if inv.Context == nil {
			return ErrMissingContext
		}
		return d.runContext(inv)
	case execctx.SequenceCommand:
		for _, step := range inv.Steps {
			if err := d.Run(step); err != nil {
				return err
			}
		}
		return nil
	case resolver.HostInsertText:
		return d.record(inv, func() error {
			return d.insertText(inv.Args.String(resolver.ArgCharacters))
		})
	case resolver.HostDeleteLeft:
		return d.record(inv, d.deleteLeft)
	case resolver.HostExitInsertMode:
		return d.exitInsert()
	case resolver.HostRunNormalInsertModeAction:
		return d.finishNormalInsert()
	case resolver.HostEnterNormalMode:
		if d.st.Mode().IsVisual() {
			d.sel = buffer.Caret(d.vcursor)
		}
		err := d.st.Controller().Enter(mode.Normal)
		d.st.UpdateStatus()
		return err
	}
	return fmt.Errorf("run %q: %w", inv.Command, ErrUnknownHostCommand)
}

// record runs fn and logs its edits as one undoable history entry.
func (d *Document) record(inv execctx.Invocation, fn func() error) error {
	before := d.Selections()
	prev := d.edits
	d.edits = nil
	err := fn()
	edits := d.edits
	d.edits = prev

	if len(edits) > 0 {
		d.history.Record(history.Entry{
			Invocation: inv,
			Edits:      edits,
			Before:     before,
			After:      d.Selections(),
		})
	}
	return err
}

// runContext executes a resolved chord: the motion step, then the action
// step, then the follow-up mode.
func (d *Document) runContext(inv execctx.Invocation) error {
	ctx := *inv.Context
	before := d.Selections()
	prev := d.edits
	d.edits = nil
	d.origin = d.cursorPos()

	ok := true
	var err error
	if !ctx.MotionStep.IsZero() {
		ok, err = d.applyMotion(ctx)
	}
	if err == nil && ok && !ctx.ActionStep.IsZero() {
		err = d.applyAction(ctx)
		if ctx.Mode.IsVisual() && d.sel.IsEmpty() {
			d.vanchor, d.vcursor = d.sel.Head, d.sel.Head
		}
	}
	edits := d.edits
	d.edits = prev

	if !ok {
		d.sel = before[0]
		d.Blink()
		if d.st.Mode() == mode.Normal {
			d.history.GlueMarkedGroups()
		}
		return err
	}

	textEntry := ctx.FollowUpMode.IsTextEntry()
	d.history.Record(history.Entry{
		Invocation: inv,
		Edits:      edits,
		Before:     before,
		After:      d.Selections(),
		Automatic:  ctx.Irreversible || ctx.Action == "" || (len(edits) == 0 && !textEntry),
	})
	if err != nil {
		return err
	}

	if ctx.FollowUpMode != mode.None {
		if textEntry && ctx.ActionStep.Command != resolver.StepInsertRegister {
			d.typed.Reset()
			d.insertWhere = ctx.ActionStep.Args.String(resolver.ArgWhere)
		}
		if err := d.st.Controller().Enter(ctx.FollowUpMode); err != nil {
			return err
		}
	}
	if !ctx.AlignWithXPos {
		d.st.UpdateXPos()
	}
	d.clampNormal()
	return nil
}

// modeChanged keeps the selection in step with the mode.
func (d *Document) modeChanged(from, to mode.Mode) {
	switch {
	case to.IsVisual():
		if !from.IsVisual() {
			d.vanchor, d.vcursor = d.sel.Head, d.sel.Head
		}
		d.syncVisual(to)
	case from.IsVisual():
		d.sel = buffer.Caret(d.vcursor)
		d.clampNormal()
	}
}

// cursorPos is the offset of the cursor character.
func (d *Document) cursorPos() int {
	if d.st != nil && d.st.Mode().IsVisual() {
		return d.vcursor
	}
	return d.sel.Head
}

// syncVisual derives the selection from the visual anchor and cursor.
func (d *Document) syncVisual(m mode.Mode) {
	n := d.buf.Len()
	a, c := clamp(d.vanchor, 0, n), clamp(d.vcursor, 0, n)
	if m == mode.VisualLine {
		ar, _ := d.buf.RowCol(a)
		cr, _ := d.buf.RowCol(c)
		if cr >= ar {
			d.sel = buffer.Selection{Anchor: d.buf.FullLine(ar).Start, Head: d.buf.FullLine(cr).End}
		} else {
			d.sel = buffer.Selection{Anchor: d.buf.FullLine(ar).End, Head: d.buf.FullLine(cr).Start}
		}
		return
	}
	if c >= a {
		d.sel = buffer.Selection{Anchor: a, Head: min(c+1, n)}
	} else {
		d.sel = buffer.Selection{Anchor: min(a+1, n), Head: c}
	}
}

// clampNormal keeps a Normal mode caret on a character of its line.
func (d *Document) clampNormal() {
	if d.st.Mode() != mode.Normal || !d.sel.IsEmpty() {
		return
	}
	pos := clamp(d.sel.Head, 0, d.buf.Len())
	row, _ := d.buf.RowCol(pos)
	line := d.buf.LineContent(row)
	if line.Len() > 0 && pos >= line.End {
		pos = line.End - 1
	}
	d.sel = buffer.Caret(pos)
}

// replace swaps the text in r for s and records the edit.
func (d *Document) replace(r buffer.Range, s string) error {
	removed := d.buf.Substr(r)
	if removed == s {
		return nil
	}
	if err := d.buf.Replace(r, s); err != nil {
		return err
	}
	d.edits = append(d.edits, history.Edit{Offset: r.Start, Removed: removed, Inserted: s})
	return nil
}

func (d *Document) insertText(s string) error {
	if s == "" {
		return nil
	}
	pos := d.sel.Head
	n := len([]rune(s))
	r := buffer.Range{Start: pos, End: pos}
	if d.overwrite {
		row, _ := d.buf.RowCol(pos)
		r.End = min(pos+n, d.buf.LineContent(row).End)
	}
	if err := d.replace(r, s); err != nil {
		return err
	}
	d.sel = buffer.Caret(pos + n)
	d.typed.WriteString(s)
	return nil
}

func (d *Document) deleteLeft() error {
	pos := d.sel.Head
	if pos == 0 {
		return nil
	}
	if err := d.replace(buffer.Range{Start: pos - 1, End: pos}, ""); err != nil {
		return err
	}
	d.sel = buffer.Caret(pos - 1)
	if typed := []rune(d.typed.String()); len(typed) > 0 {
		d.typed.Reset()
		d.typed.WriteString(string(typed[:len(typed)-1]))
	}
	return nil
}

// moveLeft steps the caret back one character within its line, as
// leaving a text-entry mode does.
func (d *Document) moveLeft() {
	_, col := d.buf.RowCol(d.sel.Head)
	if col > 0 {
		d.sel = buffer.Caret(d.sel.Head - 1)
	}
}

func (d *Document) exitInsert() error {
	if typed := d.typed.String(); typed != "" {
		d.session.Registers.SetLastInserted(typed)
	}
	d.moveLeft()
	err := d.st.Controller().Enter(mode.Normal)
	d.session.UpdateRepeat(d.history)
	err = errors.Join(err, d.st.Reset())
	d.st.UpdateStatus()
	return err
}

// finishNormalInsert ends a counted insert by typing the inserted text
// count-1 more times.
func (d *Document) finishNormalInsert() error {
	typed := d.typed.String()
	count := d.st.Pending().Count()

	var err error
	if typed != "" {
		text := typed
		if d.insertWhere == resolver.InsertBelow || d.insertWhere == resolver.InsertAbove {
			text = "\n" + typed
		}
		for i := 1; i < count && err == nil; i++ {
			err = d.Run(execctx.Command(resolver.HostInsertText, execctx.Args{resolver.ArgCharacters: text}))
		}
		d.session.Registers.SetLastInserted(typed)
	}

	d.moveLeft()
	ctrl := d.st.Controller()
	ctrl.Set(mode.Normal)
	err = errors.Join(err, d.st.Reset(), ctrl.Enter(mode.Normal))
	d.session.UpdateRepeat(d.history)
	d.st.UpdateStatus()
	return err
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/history"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

// applyAction runs the action step of ctx on the current selection.
func (d *Document) applyAction(ctx execctx.Context) error {
	args := ctx.ActionStep.Args
	reg, _ := utf8.DecodeRuneInString(args.String(resolver.ArgRegister))
	if reg == utf8.RuneError {
		reg = 0
	}
	linewise := args.Bool(resolver.ArgLinewise) || ctx.MotionStep.Args.Bool(resolver.ArgLinewise)

	switch ctx.ActionStep.Command {
	case resolver.StepDelete:
		return d.deleteSelection(reg, linewise, false)
	case resolver.StepChange:
		return d.deleteSelection(reg, linewise, true)
	case resolver.StepYank:
		d.yankSelection(reg, linewise)
		return nil
	case resolver.StepShift:
		return d.shift(args.Int(resolver.ArgDelta))
	case resolver.StepChangeCase:
		return d.changeCase(args.Bool(resolver.ArgUpper), linewise)
	case resolver.StepDeleteChar:
		return d.deleteChars(reg, max(args.Int(resolver.ArgCount), 1))
	case resolver.StepPaste:
		return d.paste(ctx, reg, max(args.Int(resolver.ArgCount), 1), args.Bool(resolver.ArgBackward))
	case resolver.StepEnterInsert:
		return d.enterInsert(args.String(resolver.ArgWhere))
	case resolver.StepReplaceChar:
		return d.replaceChars(ctx, args.String(resolver.ArgChar), max(args.Int(resolver.ArgCount), 1))
	case resolver.StepSetMark:
		name, _ := utf8.DecodeRuneInString(args.String(resolver.ArgMark))
		if err := d.session.Marks.Set(d.id, name, d.cursorPos()); err != nil {
			d.log.Debug("mark rejected", "error", err)
			d.Blink()
		}
		return nil
	case resolver.StepUndo:
		return d.undo(max(args.Int(resolver.ArgCount), 1))
	case resolver.StepRedo:
		return d.redo(max(args.Int(resolver.ArgCount), 1))
	case resolver.StepRepeat:
		return d.repeat(args.Int(resolver.ArgCount))
	case resolver.StepInsertRegister:
		r, ok := d.session.Registers.Get(reg)
		if !ok || r.Content == "" {
			d.Blink()
			return nil
		}
		return d.insertText(r.Content)
	case resolver.StepEsc:
		d.EraseOverlay(mode.OverlaySearch)
		return nil
	case resolver.StepVisual, resolver.StepEnterReplace:
		// The follow-up mode does the work.
		return nil
	}
	return fmt.Errorf("action %q: %w", ctx.ActionStep.Command, ErrUnknownStep)
}

// selectionRange is the text an operator acts on.
func (d *Document) selectionRange(linewise bool) buffer.Range {
	r := d.sel.Range()
	if !linewise {
		return r
	}
	startRow, _ := d.buf.RowCol(r.Start)
	endRow, _ := d.buf.RowCol(max(r.End-1, r.Start))
	return d.lineSpan(startRow, endRow)
}

// lineRegister is the register content for the whole lines in text.
func lineRegister(text string) vim.Register {
	text = strings.TrimPrefix(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return vim.Register{Content: text, Linewise: true}
}

func (d *Document) deleteSelection(reg rune, linewise, change bool) error {
	r := d.selectionRange(linewise)
	last, _ := d.buf.RuneAt(r.End - 1)
	switch {
	case linewise && change:
		// cc keeps an empty line to type on.
		if r.End > r.Start && last == '\n' {
			r.End--
		}
	case linewise && r.End == d.buf.Len() && r.Start > 0 && last != '\n':
		// The last line has no newline of its own to take.
		r.Start--
	}

	text := d.buf.Substr(r)
	content := vim.Register{Content: text}
	if linewise {
		content = lineRegister(text)
	}
	d.session.Registers.Delete(reg, content)

	if err := d.replace(r, ""); err != nil {
		return err
	}
	caret := r.Start
	if linewise && !change {
		row, _ := d.buf.RowCol(min(caret, d.buf.Len()))
		if row > d.lastRow() {
			row = d.lastRow()
		}
		caret = d.firstNonBlank(row)
	}
	d.sel = buffer.Caret(caret)
	return nil
}

func (d *Document) yankSelection(reg rune, linewise bool) {
	r := d.selectionRange(linewise)
	text := d.buf.Substr(r)
	content := vim.Register{Content: text}
	caret := r.Start
	if linewise {
		content = lineRegister(text)
		caret = d.origin
	}
	d.session.Registers.Yank(reg, content)
	d.sel = buffer.Caret(caret)
}

func (d *Document) shift(delta int) error {
	r := d.sel.Range()
	first, _ := d.buf.RowCol(r.Start)
	last, _ := d.buf.RowCol(max(r.End-1, r.Start))
	indent := strings.Repeat(" ", d.shiftWidth)

	for row := last; row >= first; row-- {
		line := d.buf.LineContent(row)
		text := d.buf.Line(row)
		switch {
		case delta > 0 && text != "":
			if err := d.replace(buffer.Range{Start: line.Start, End: line.Start}, indent); err != nil {
				return err
			}
		case delta < 0:
			n := 0
			if strings.HasPrefix(text, "\t") {
				n = 1
			} else {
				for n < d.shiftWidth && n < len(text) && text[n] == ' ' {
					n++
				}
			}
			if err := d.replace(buffer.Range{Start: line.Start, End: line.Start + n}, ""); err != nil {
				return err
			}
		}
	}
	d.sel = buffer.Caret(d.firstNonBlank(first))
	return nil
}

func (d *Document) changeCase(upper, linewise bool) error {
	r := d.selectionRange(linewise)
	text := d.buf.Substr(r)
	if upper {
		text = strings.ToUpper(text)
	} else {
		text = strings.ToLower(text)
	}
	if err := d.replace(r, text); err != nil {
		return err
	}
	caret := r.Start
	if linewise {
		caret = d.origin
	}
	d.sel = buffer.Caret(caret)
	return nil
}

func (d *Document) deleteChars(reg rune, count int) error {
	pos := d.cursorPos()
	row, _ := d.buf.RowCol(pos)
	r := buffer.Range{Start: pos, End: min(pos+count, d.buf.LineContent(row).End)}
	if r.IsEmpty() {
		return nil
	}
	d.session.Registers.Delete(reg, vim.Register{Content: d.buf.Substr(r)})
	if err := d.replace(r, ""); err != nil {
		return err
	}
	d.sel = buffer.Caret(pos)
	return nil
}

func (d *Document) paste(ctx execctx.Context, reg rune, count int, before bool) error {
	name := reg
	if name == 0 {
		name = vim.RegisterUnnamed
	}
	content, ok := d.session.Registers.Get(name)
	if !ok || content.Content == "" {
		d.Blink()
		return nil
	}
	text := strings.Repeat(content.Content, count)
	pos := d.cursorPos()

	if ctx.Mode.IsVisual() {
		r := d.selectionRange(ctx.Mode == mode.VisualLine)
		replaced := d.buf.Substr(r)
		if content.Linewise && ctx.Mode != mode.VisualLine {
			text = "\n" + text
		}
		if err := d.replace(r, text); err != nil {
			return err
		}
		d.session.Registers.Delete(0, vim.Register{Content: replaced, Linewise: ctx.Mode == mode.VisualLine})
		d.sel = buffer.Caret(r.Start)
		return nil
	}

	row, _ := d.buf.RowCol(pos)
	if content.Linewise {
		at := d.buf.FullLine(row).Start
		target := row
		if !before {
			at = d.buf.FullLine(row).End
			target = row + 1
			if last, _ := d.buf.RuneAt(at - 1); at == d.buf.Len() && last != '\n' {
				text = "\n" + strings.TrimSuffix(text, "\n")
			}
		}
		if err := d.replace(buffer.Range{Start: at, End: at}, text); err != nil {
			return err
		}
		d.sel = buffer.Caret(d.firstNonBlank(target))
		return nil
	}

	at := pos
	if line := d.buf.LineContent(row); !before && line.Len() > 0 {
		at = min(pos+1, line.End)
	}
	if err := d.replace(buffer.Range{Start: at, End: at}, text); err != nil {
		return err
	}
	d.sel = buffer.Caret(at + utf8.RuneCountInString(text) - 1)
	return nil
}

func (d *Document) enterInsert(where string) error {
	pos := d.cursorPos()
	row, _ := d.buf.RowCol(pos)
	line := d.buf.LineContent(row)

	switch where {
	case resolver.InsertAfter:
		if line.Len() > 0 {
			pos = min(pos+1, line.End)
		}
	case resolver.InsertLineStart:
		pos = d.firstNonBlank(row)
	case resolver.InsertLineEnd:
		pos = line.End
	case resolver.InsertBelow:
		if err := d.replace(buffer.Range{Start: line.End, End: line.End}, "\n"); err != nil {
			return err
		}
		pos = line.End + 1
	case resolver.InsertAbove:
		if err := d.replace(buffer.Range{Start: line.Start, End: line.Start}, "\n"); err != nil {
			return err
		}
		pos = line.Start
	}
	d.sel = buffer.Caret(pos)
	return nil
}

func (d *Document) replaceChars(ctx execctx.Context, char string, count int) error {
	c, _ := utf8.DecodeRuneInString(char)
	if char == "" {
		d.Blink()
		return nil
	}

	if ctx.Mode.IsVisual() {
		r := d.selectionRange(ctx.Mode == mode.VisualLine)
		text := []rune(d.buf.Substr(r))
		for i, old := range text {
			if old != '\n' {
				text[i] = c
			}
		}
		if err := d.replace(r, string(text)); err != nil {
			return err
		}
		d.sel = buffer.Caret(r.Start)
		return nil
	}

	pos := d.cursorPos()
	row, _ := d.buf.RowCol(pos)
	if pos+count > d.buf.LineContent(row).End {
		d.Blink()
		return nil
	}
	if err := d.replace(buffer.Range{Start: pos, End: pos + count}, strings.Repeat(string(c), count)); err != nil {
		return err
	}
	d.sel = buffer.Caret(pos + count - 1)
	return nil
}

func (d *Document) undo(count int) error {
	for i := range count {
		entry, err := d.history.Undo(d.buf)
		if errors.Is(err, history.ErrNothingToUndo) {
			if i == 0 {
				d.Blink()
			}
			return nil
		}
		if err != nil {
			return err
		}
		if len(entry.Before) > 0 {
			d.sel = buffer.Caret(clamp(entry.Before[0].Range().Start, 0, d.buf.Len()))
		}
	}
	return nil
}

func (d *Document) redo(count int) error {
	for i := range count {
		entry, err := d.history.Redo(d.buf)
		if errors.Is(err, history.ErrNothingToRedo) {
			if i == 0 {
				d.Blink()
			}
			return nil
		}
		if err != nil {
			return err
		}
		if len(entry.After) > 0 {
			d.sel = buffer.Caret(clamp(entry.After[0].Head, 0, d.buf.Len()))
		}
	}
	return nil
}

// repeat replays the session's repeat record. A count replaces the count
// the command was first run with.
func (d *Document) repeat(count int) error {
	rec, ok := d.session.Repeat()
	if !ok {
		d.Blink()
		return nil
	}
	inv := rec.Invocation
	if count > 0 {
		var err error
		if inv, err = d.recount(inv, count); err != nil {
			return err
		}
	}

	d.history.MarkGroupsForGluing()
	err := d.Run(inv)
	if d.st.Mode().IsTextEntry() {
		d.moveLeft()
		err = errors.Join(err, d.st.Controller().Enter(mode.Normal))
	}
	d.history.GlueMarkedGroups()
	return err
}

// recount resolves the chord of inv again with a new count. For a
// sequence the leading chord is recounted.
func (d *Document) recount(inv execctx.Invocation, count int) (execctx.Invocation, error) {
	if inv.Command == execctx.SequenceCommand {
		if len(inv.Steps) == 0 {
			return inv, nil
		}
		first, err := d.recount(inv.Steps[0], count)
		if err != nil {
			return inv, err
		}
		steps := append([]execctx.Invocation{first}, inv.Steps[1:]...)
		return execctx.Sequence(steps...), nil
	}
	if !inv.HasAction() {
		return inv, nil
	}

	old := *inv.Context
	ctx := execctx.New()
	ctx.Action, ctx.Motion, ctx.Mode = old.Action, old.Motion, old.Mode
	ctx.Register, ctx.UserInput, ctx.XPos = old.Register, old.UserInput, old.XPos
	ctx.LastBufferSearch, ctx.LastCharacterSearch = old.LastBufferSearch, old.LastCharacterSearch
	ctx.Count, ctx.UserCount, ctx.HasUserCount = count, count, true

	if ctx.Motion != "" {
		motion, err := d.session.Resolvers.Motion(ctx.Motion)
		if err != nil {
			return inv, err
		}
		ctx = motion(ctx)
	}
	action, err := d.session.Resolvers.Action(ctx.Action)
	if err != nil {
		return inv, err
	}
	return execctx.Run(action(ctx)), nil
}

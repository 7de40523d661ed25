package app

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

// applyMotion moves the cursor, or in InternalNormal selects the text
// between the cursor and the target. It reports false when the motion
// found no target.
func (d *Document) applyMotion(ctx execctx.Context) (bool, error) {
	step := ctx.MotionStep
	pos := d.cursorPos()

	switch step.Command {
	case resolver.StepReverseCaret:
		if ctx.Mode.IsVisual() {
			d.vanchor, d.vcursor = d.vcursor, d.vanchor
			d.syncVisual(ctx.Mode)
		}
		return true, nil
	case resolver.StepSelectLines:
		row, _ := d.buf.RowCol(pos)
		last := min(row+max(step.Args.Int(resolver.ArgCount), 1)-1, d.lastRow())
		r := d.lineSpan(row, last)
		d.sel = buffer.Selection{Anchor: r.Start, Head: r.End}
		return true, nil
	}

	target, inclusive, ok, err := d.motionTarget(ctx, pos)
	if err != nil || !ok {
		return false, err
	}

	switch ctx.Mode {
	case mode.InternalNormal:
		r := buffer.NewRange(pos, target)
		if inclusive {
			row, _ := d.buf.RowCol(r.End)
			r.End = min(r.End+1, max(d.buf.LineContent(row).End, r.End))
		}
		if step.Args.Bool(resolver.ArgLinewise) {
			startRow, _ := d.buf.RowCol(r.Start)
			endRow, _ := d.buf.RowCol(r.End)
			r = d.lineSpan(startRow, endRow)
		}
		d.sel = buffer.Selection{Anchor: r.Start, Head: r.End}
	case mode.Visual, mode.VisualLine:
		d.vcursor = target
		d.syncVisual(ctx.Mode)
	default:
		d.sel = buffer.Caret(target)
	}
	return true, nil
}

// motionTarget computes where a motion step lands from pos.
func (d *Document) motionTarget(ctx execctx.Context, pos int) (target int, inclusive, ok bool, err error) {
	args := ctx.MotionStep.Args
	inclusive = args.Bool(resolver.ArgInclusive)
	operating := ctx.Mode == mode.InternalNormal
	row, col := d.buf.RowCol(pos)

	switch ctx.MotionStep.Command {
	case resolver.StepMoveChars:
		line := d.buf.LineContent(row)
		limit := line.Len()
		if !operating {
			limit = max(limit-1, 0)
		}
		return line.Start + clamp(col+args.Int(resolver.ArgDelta), 0, limit), inclusive, true, nil

	case resolver.StepMoveLines:
		next := clamp(row+args.Int(resolver.ArgDelta), 0, d.lastRow())
		line := d.buf.LineContent(next)
		limit := line.Len()
		if !operating {
			limit = max(limit-1, 0)
		}
		return line.Start + clamp(ctx.XPos, 0, limit), inclusive, true, nil

	case resolver.StepMoveWords:
		count := max(args.Int(resolver.ArgCount), 1)
		backward, end := args.Bool(resolver.ArgBackward), args.Bool(resolver.ArgEnd)
		if operating && ctx.Action == vim.ActionChange && !backward && !end && !d.isSpace(pos) {
			// cw changes to the end of the word, like ce.
			end, inclusive = true, true
			pos--
		}
		t := pos
		for range count {
			switch {
			case backward:
				t = d.wordBackward(t)
			case end:
				t = d.wordEnd(t)
			default:
				t = d.wordForward(t)
			}
		}
		if operating && !backward && !end {
			// A forward word motion does not carry an operator past the
			// end of the line it started on.
			if trow, _ := d.buf.RowCol(t); trow > row {
				t = max(d.buf.LineContent(row).End, pos)
			}
		}
		return t, inclusive, true, nil

	case resolver.StepLineStart:
		return d.buf.LineContent(row).Start, inclusive, true, nil

	case resolver.StepLineEnd:
		last := min(row+max(args.Int(resolver.ArgCount), 1)-1, d.lastRow())
		line := d.buf.LineContent(last)
		return max(line.End-1, line.Start), inclusive, true, nil

	case resolver.StepFirstNonBlank:
		return d.firstNonBlank(row), inclusive, true, nil

	case resolver.StepGotoLine:
		line := args.Int(resolver.ArgLine)
		target := d.lastRow()
		if line > 0 {
			target = min(line-1, d.lastRow())
		}
		return d.firstNonBlank(target), inclusive, true, nil

	case resolver.StepFindChar:
		t, found := d.findChar(pos, args)
		return t, inclusive, found, nil

	case resolver.StepSearch:
		t, found, err := d.search(pos, args.String(resolver.ArgPattern), max(args.Int(resolver.ArgCount), 1))
		return t, inclusive, found, err

	case resolver.StepGotoMark:
		name, _ := utf8.DecodeRuneInString(args.String(resolver.ArgMark))
		m, found := d.session.Marks.Get(d.id, name)
		if !found {
			return 0, false, false, nil
		}
		mrow, _ := d.buf.RowCol(clamp(m.Offset, 0, d.buf.Len()))
		return d.firstNonBlank(mrow), inclusive, true, nil
	}
	return 0, false, false, fmt.Errorf("motion %q: %w", ctx.MotionStep.Command, ErrUnknownStep)
}

// lastRow is the last row a cursor can rest on. A trailing newline does
// not start a line of its own.
func (d *Document) lastRow() int {
	last := d.buf.LineCount() - 1
	if last > 0 {
		if r, _ := d.buf.RuneAt(d.buf.Len() - 1); r == '\n' {
			last--
		}
	}
	return last
}

// lineSpan covers rows a through b including their newlines.
func (d *Document) lineSpan(a, b int) buffer.Range {
	if a > b {
		a, b = b, a
	}
	return buffer.Range{Start: d.buf.FullLine(a).Start, End: d.buf.FullLine(b).End}
}

func (d *Document) firstNonBlank(row int) int {
	line := d.buf.LineContent(row)
	for i := line.Start; i < line.End; i++ {
		if r, _ := d.buf.RuneAt(i); r != ' ' && r != '\t' {
			return i
		}
	}
	return line.Start
}

func (d *Document) findChar(pos int, args execctx.Args) (int, bool) {
	char := []rune(args.String(resolver.ArgChar))
	if len(char) == 0 {
		return 0, false
	}
	row, _ := d.buf.RowCol(pos)
	line := d.buf.LineContent(row)
	backward, till := args.Bool(resolver.ArgBackward), args.Bool(resolver.ArgTill)
	count := max(args.Int(resolver.ArgCount), 1)

	step := 1
	if backward {
		step = -1
	}
	for i := pos + step; i >= line.Start && i < line.End; i += step {
		if r, _ := d.buf.RuneAt(i); r != char[0] {
			continue
		}
		if count--; count > 0 {
			continue
		}
		if till {
			return i - step, true
		}
		return i, true
	}
	return 0, false
}

// search finds the count-th match of pattern after pos, wrapping around
// the end of the buffer.
func (d *Document) search(pos int, pattern string, count int) (int, bool, error) {
	if pattern == "" {
		return 0, false, nil
	}
	re := d.patterns.Compile(pattern)
	text := d.buf.Text()

	at := pos
	for range count {
		start := min(byteOffset(text, at+1), len(text))
		loc := re.FindStringIndex(text[start:])
		if loc != nil {
			loc[0] += start
		} else if loc = re.FindStringIndex(text); loc == nil {
			return 0, false, nil
		}
		at = utf8.RuneCountInString(text[:loc[0]])
	}

	d.overlays[mode.OverlaySearch] = true
	d.session.Registers.SetLastSearch(pattern)
	return at, true, nil
}

func byteOffset(s string, runes int) int {
	for i := range s {
		if runes == 0 {
			return i
		}
		runes--
	}
	return len(s)
}

type charClass int

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func classify(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	}
	return classPunct
}

func (d *Document) classAt(i int) charClass {
	r, ok := d.buf.RuneAt(i)
	if !ok {
		return classSpace
	}
	return classify(r)
}

func (d *Document) isSpace(i int) bool {
	return d.classAt(i) == classSpace
}

func (d *Document) wordForward(pos int) int {
	n := d.buf.Len()
	i := pos
	if c := d.classAt(i); c != classSpace {
		for i < n && d.classAt(i) == c {
			i++
		}
	}
	for i < n && d.classAt(i) == classSpace {
		i++
	}
	return i
}

func (d *Document) wordEnd(pos int) int {
	n := d.buf.Len()
	i := pos + 1
	for i < n && d.classAt(i) == classSpace {
		i++
	}
	if i >= n {
		return max(n-1, 0)
	}
	c := d.classAt(i)
	for i+1 < n && d.classAt(i+1) == c {
		i++
	}
	return i
}

func (d *Document) wordBackward(pos int) int {
	i := pos - 1
	for i > 0 && d.classAt(i) == classSpace {
		i--
	}
	if i <= 0 {
		return 0
	}
	c := d.classAt(i)
	for i > 0 && d.classAt(i-1) == c {
		i--
	}
	return i
}

package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when an offset or range falls outside the buffer.
var ErrOutOfRange = errors.New("offset out of range")

// Buffer holds the text of one editing surface.
type Buffer struct {
	text []rune

	// lineStarts caches the offset of the first rune of every line.
	lineStarts []int

	revision uint64
}

// New creates an empty buffer.
func New() *Buffer {
	return NewFromString("")
}

// NewFromString creates a buffer holding s. CRLF line endings are normalized to LF.
func NewFromString(s string) *Buffer {
	b := &Buffer{}
	b.setText([]rune(strings.ReplaceAll(s, "\r\n", "\n")))
	return b
}

func (b *Buffer) setText(text []rune) {
	b.text = text
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, r := range text {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	b.revision++
}

// Text returns the full buffer contents.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Revision increases on every mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// RuneAt returns the rune at offset, or 0 and false past the end.
func (b *Buffer) RuneAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(b.text) {
		return 0, false
	}
	return b.text[offset], true
}

// Substr returns the text covered by r, clamped to the buffer.
func (b *Buffer) Substr(r Range) string {
	start := min(max(r.Start, 0), len(b.text))
	end := min(max(r.End, start), len(b.text))
	return string(b.text[start:end])
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// RowCol converts an offset to a 0-indexed (row, col) pair.
// Offsets past the end are clamped.
func (b *Buffer) RowCol(offset int) (row, col int) {
	offset = min(max(offset, 0), len(b.text))
	lo, hi := 0, len(b.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, offset - b.lineStarts[lo]
}

// Offset converts (row, col) to an offset. The column is clamped to the
// line's content, excluding the newline.
func (b *Buffer) Offset(row, col int) int {
	row = min(max(row, 0), len(b.lineStarts)-1)
	line := b.LineContent(row)
	return b.lineStarts[row] + min(max(col, 0), line.Len())
}

// LineContent returns the range of a row without its trailing newline.
func (b *Buffer) LineContent(row int) Range {
	row = min(max(row, 0), len(b.lineStarts)-1)
	start := b.lineStarts[row]
	end := len(b.text)
	if row+1 < len(b.lineStarts) {
		end = b.lineStarts[row+1] - 1
	}
	return Range{Start: start, End: end}
}

// FullLine returns the range of a row including its trailing newline, if any.
func (b *Buffer) FullLine(row int) Range {
	r := b.LineContent(row)
	if r.End < len(b.text) {
		r.End++
	}
	return r
}

// Line returns the text of a row without its trailing newline.
func (b *Buffer) Line(row int) string {
	return b.Substr(b.LineContent(row))
}

// Insert inserts s at offset and returns the offset just after the new text.
func (b *Buffer) Insert(offset int, s string) (int, error) {
	if offset < 0 || offset > len(b.text) {
		return 0, fmt.Errorf("insert at %d: %w", offset, ErrOutOfRange)
	}
	ins := []rune(s)
	text := make([]rune, 0, len(b.text)+len(ins))
	text = append(text, b.text[:offset]...)
	text = append(text, ins...)
	text = append(text, b.text[offset:]...)
	b.setText(text)
	return offset + len(ins), nil
}

// Delete removes the text covered by r and returns it.
func (b *Buffer) Delete(r Range) (string, error) {
	if r.Start < 0 || r.End > len(b.text) || r.Start > r.End {
		return "", fmt.Errorf("delete %s: %w", r, ErrOutOfRange)
	}
	removed := string(b.text[r.Start:r.End])
	text := make([]rune, 0, len(b.text)-r.Len())
	text = append(text, b.text[:r.Start]...)
	text = append(text, b.text[r.End:]...)
	b.setText(text)
	return removed, nil
}

// Replace swaps the text covered by r for s.
func (b *Buffer) Replace(r Range, s string) error {
	if _, err := b.Delete(r); err != nil {
		return err
	}
	_, err := b.Insert(r.Start, s)
	return err
}

// SetText replaces the whole buffer contents.
func (b *Buffer) SetText(s string) {
	b.setText([]rune(s))
}

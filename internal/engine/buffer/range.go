package buffer

import "fmt"

// Range is a span of rune offsets, Start inclusive, End exclusive.
type Range struct {
	Start int
	End   int
}

// NewRange creates a Range, ordering the bounds.
func NewRange(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset lies within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Union returns the smallest range containing both ranges.
func (r Range) Union(other Range) Range {
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Selection is an anchor/head pair. Head is where the caret is drawn and
// where motions continue from.
type Selection struct {
	Anchor int
	Head   int
}

// Caret returns an empty selection at offset.
func Caret(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection is a plain caret.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// IsForward returns true if the head is after the anchor.
func (s Selection) IsForward() bool {
	return s.Head > s.Anchor
}

// Range returns the selection as an ordered range.
func (s Selection) Range() Range {
	return NewRange(s.Anchor, s.Head)
}

// Extend moves the head, keeping the anchor.
func (s Selection) Extend(offset int) Selection {
	return Selection{Anchor: s.Anchor, Head: offset}
}

// Flip swaps anchor and head.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// Clamp limits both ends to [0, max].
func (s Selection) Clamp(maxOffset int) Selection {
	clamp := func(v int) int {
		return min(max(v, 0), maxOffset)
	}
	return Selection{Anchor: clamp(s.Anchor), Head: clamp(s.Head)}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("%d->%d", s.Anchor, s.Head)
}

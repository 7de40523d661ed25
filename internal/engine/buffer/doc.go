// Package buffer provides the text storage behind an editing surface.
//
// Offsets are rune offsets into the text. Positions convert to (row, col)
// pairs, both 0-indexed, with columns counted in runes. A Selection is an
// anchor/head pair; when Anchor == Head it is a plain caret.
//
// Basic usage:
//
//	buf := buffer.NewFromString("hello\nworld")
//	row, col := buf.RowCol(7) // 1, 1
//	buf.Insert(5, "!")        // "hello!\nworld"
//	buf.Delete(buffer.NewRange(0, 1))
//
// Buffer is not safe for concurrent use. An editing surface processes one key
// event at a time and owns its buffer.
package buffer

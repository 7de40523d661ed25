package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowCol(t *testing.T) {
	buf := NewFromString("one\ntwo\n\nfour")

	tests := []struct {
		offset   int
		row, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 0, 3},
		{4, 1, 0},
		{8, 2, 0},
		{9, 3, 0},
		{13, 3, 4},
		{99, 3, 4},
		{-5, 0, 0},
	}

	for _, tt := range tests {
		row, col := buf.RowCol(tt.offset)
		assert.Equal(t, tt.row, row, "row of %d", tt.offset)
		assert.Equal(t, tt.col, col, "col of %d", tt.offset)
	}
}

func TestOffsetClampsColumn(t *testing.T) {
	buf := NewFromString("abc\nde")

	assert.Equal(t, 2, buf.Offset(0, 2))
	assert.Equal(t, 3, buf.Offset(0, 10), "column past end stops before newline")
	assert.Equal(t, 6, buf.Offset(1, 10))
	assert.Equal(t, 4, buf.Offset(7, 0), "row clamps to last line")
}

func TestLines(t *testing.T) {
	buf := NewFromString("ab\ncd\n")

	require.Equal(t, 3, buf.LineCount())
	assert.Equal(t, "ab", buf.Line(0))
	assert.Equal(t, "cd", buf.Line(1))
	assert.Equal(t, "", buf.Line(2))
	assert.Equal(t, Range{Start: 0, End: 3}, buf.FullLine(0))
	assert.Equal(t, Range{Start: 6, End: 6}, buf.FullLine(2))
}

func TestInsertDelete(t *testing.T) {
	buf := NewFromString("hello world")
	rev := buf.Revision()

	end, err := buf.Insert(5, ",")
	require.NoError(t, err)
	assert.Equal(t, 6, end)
	assert.Equal(t, "hello, world", buf.Text())
	assert.Greater(t, buf.Revision(), rev)

	removed, err := buf.Delete(NewRange(7, 5))
	require.NoError(t, err)
	assert.Equal(t, ", ", removed)
	assert.Equal(t, "helloworld", buf.Text())

	_, err = buf.Insert(100, "x")
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = buf.Delete(Range{Start: 3, End: 50})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestCRLFNormalized(t *testing.T) {
	buf := NewFromString("a\r\nb")
	assert.Equal(t, "a\nb", buf.Text())
	assert.Equal(t, 2, buf.LineCount())
}

func TestSelection(t *testing.T) {
	s := Selection{Anchor: 5, Head: 2}

	assert.False(t, s.IsForward())
	assert.Equal(t, Range{Start: 2, End: 5}, s.Range())
	assert.Equal(t, Selection{Anchor: 2, Head: 5}, s.Flip())
	assert.Equal(t, Selection{Anchor: 5, Head: 9}, s.Extend(9))
	assert.Equal(t, Selection{Anchor: 3, Head: 2}, s.Clamp(3))
	assert.True(t, Caret(4).IsEmpty())
}

package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vicore/internal/engine/buffer"
)

type fakeSurface struct {
	text        *buffer.Buffer
	sels        []buffer.Selection
	commandMode bool
	cursor      CursorStyle
	overwrite   bool
	overlays    map[string]bool
	glued       int
}

func newFakeSurface(text string, sels ...buffer.Selection) *fakeSurface {
	return &fakeSurface{
		text:     buffer.NewFromString(text),
		sels:     sels,
		overlays: map[string]bool{OverlaySearch: true},
	}
}

func (f *fakeSurface) Selections() []buffer.Selection { return f.sels }
func (f *fakeSurface) RowCol(offset int) (int, int)   { return f.text.RowCol(offset) }
func (f *fakeSurface) SetCommandMode(on bool)         { f.commandMode = on }
func (f *fakeSurface) SetCursorStyle(s CursorStyle)   { f.cursor = s }
func (f *fakeSurface) Overwrite() bool                { return f.overwrite }
func (f *fakeSurface) SetOverwrite(on bool)           { f.overwrite = on }
func (f *fakeSurface) EraseOverlay(name string)       { delete(f.overlays, name) }
func (f *fakeSurface) GlueMarkedUndoGroups()          { f.glued++ }

// observable is the surface state a user can see.
type observable struct {
	Mode        Mode
	CommandMode bool
	Cursor      CursorStyle
	Overwrite   bool
	XPos        int
	HasXPos     bool
	Overlay     bool
}

func observe(c *Controller, f *fakeSurface) observable {
	x, ok := c.XPos()
	return observable{
		Mode:        c.Current(),
		CommandMode: f.commandMode,
		Cursor:      f.cursor,
		Overwrite:   f.overwrite,
		XPos:        x,
		HasXPos:     ok,
		Overlay:     f.overlays[OverlaySearch],
	}
}

func TestEnterNormal(t *testing.T) {
	f := newFakeSurface("abc\ndefgh", buffer.Selection{Anchor: 4, Head: 7})
	f.overwrite = true
	c := NewController(f)

	require.NoError(t, c.Enter(Normal))

	assert.Equal(t, Normal, c.Current())
	assert.True(t, f.commandMode)
	assert.Equal(t, CursorBlock, f.cursor)
	assert.False(t, f.overwrite)
	assert.False(t, f.overlays[OverlaySearch])
	assert.Equal(t, 1, f.glued)

	x, ok := c.XPos()
	assert.True(t, ok)
	assert.Equal(t, 3, x, "xpos is the column of the first selection's head")
}

func TestEnterNormalWithoutSelectionClearsXPos(t *testing.T) {
	f := newFakeSurface("abc")
	c := NewController(f)
	c.SetXPos(9)

	require.NoError(t, c.Enter(Normal))

	_, ok := c.XPos()
	assert.False(t, ok)
}

func TestEnterTextModes(t *testing.T) {
	tests := []struct {
		mode        Mode
		cursor      CursorStyle
		overwrite   bool
		startOverwr bool
	}{
		{Insert, CursorBar, false, true},
		{Replace, CursorUnderline, true, false},
		{NormalInsert, CursorBar, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			f := newFakeSurface("abc", buffer.Caret(1))
			f.commandMode = true
			f.overwrite = tt.startOverwr
			c := NewController(f)

			require.NoError(t, c.Enter(tt.mode))

			assert.Equal(t, tt.mode, c.Current())
			assert.False(t, f.commandMode)
			assert.Equal(t, tt.cursor, f.cursor)
			assert.Equal(t, tt.overwrite, f.overwrite)
		})
	}
}

func TestEnterVisualOnlySetsMode(t *testing.T) {
	f := newFakeSurface("abc", buffer.Caret(1))
	c := NewController(f)
	require.NoError(t, c.Enter(Normal))
	before := *f

	require.NoError(t, c.Enter(VisualLine))

	assert.Equal(t, VisualLine, c.Current())
	assert.Equal(t, before.commandMode, f.commandMode)
	assert.Equal(t, before.cursor, f.cursor)
	assert.Equal(t, before.glued, f.glued)
}

func TestEnterUnknownMode(t *testing.T) {
	c := NewController(newFakeSurface(""))

	assert.ErrorIs(t, c.Enter(InternalNormal), ErrUnknownMode)
	assert.ErrorIs(t, c.Enter(None), ErrUnknownMode)
	assert.Equal(t, None, c.Current())
}

func TestOnChange(t *testing.T) {
	c := NewController(newFakeSurface(""))

	var seen [][2]Mode
	unregister := c.OnChange(func(from, to Mode) {
		seen = append(seen, [2]Mode{from, to})
	})

	require.NoError(t, c.Enter(Normal))
	require.NoError(t, c.Enter(Normal))
	require.NoError(t, c.Enter(Insert))
	unregister()
	require.NoError(t, c.Enter(Normal))

	assert.Equal(t, [][2]Mode{{None, Normal}, {Normal, Insert}}, seen)
}

func TestEnterIsIdempotent(t *testing.T) {
	modes := []Mode{Normal, Insert, Replace, Visual, VisualLine, NormalInsert}

	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z\n]{0,40}`).Draw(t, "text")
		f := newFakeSurface(text)
		if n := len([]rune(text)); n > 0 {
			head := rapid.IntRange(0, n).Draw(t, "head")
			f.sels = []buffer.Selection{buffer.Caret(head)}
		}
		f.overwrite = rapid.Bool().Draw(t, "overwrite")
		c := NewController(f)

		start := rapid.SampledFrom(modes).Draw(t, "start")
		target := rapid.SampledFrom(modes).Draw(t, "target")
		if err := c.Enter(start); err != nil {
			t.Fatal(err)
		}

		if err := c.Enter(target); err != nil {
			t.Fatal(err)
		}
		once := observe(c, f)
		if err := c.Enter(target); err != nil {
			t.Fatal(err)
		}
		twice := observe(c, f)

		if once != twice {
			t.Fatalf("entering %s twice changed state: %+v -> %+v", target, once, twice)
		}
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"normal", Normal},
		{"Insert", Insert},
		{"visual-line", VisualLine},
		{"V", VisualLine},
		{"v", Visual},
		{" replace ", Replace},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := Parse("command")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "INSERT", NormalInsert.DisplayName())
	assert.Equal(t, "VISUAL LINE", VisualLine.DisplayName())
	assert.Equal(t, "", InternalNormal.DisplayName())
	assert.Equal(t, "visual-line", VisualLine.String())
}

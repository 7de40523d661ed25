package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vicore/internal/input/keymap"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

func TestFrame(t *testing.T) {
	e, _, _ := newEditor(t, "abc\ndef")
	feed(t, e, "lvj")

	f := e.Frame()
	assert.Equal(t, "test", f.Name)
	assert.Equal(t, []string{"abc", "def"}, f.Lines)
	assert.Equal(t, mode.Visual, f.Mode)
	assert.Equal(t, Position{Row: 1, Col: 1}, f.Cursor)
	assert.Equal(t, "-- VISUAL --", f.Status)
	require.True(t, f.Selected)
	assert.Equal(t, Position{Row: 0, Col: 1}, f.SelStart)
	assert.Equal(t, Position{Row: 1, Col: 2}, f.SelEnd)

	assert.False(t, f.Contains(0, 0))
	assert.True(t, f.Contains(0, 2))
	assert.True(t, f.Contains(1, 1))
	assert.False(t, f.Contains(1, 2))

	feed(t, e, "<Esc>/d")
	f = e.Frame()
	assert.True(t, f.Prompting)
	assert.Equal(t, "/d", f.Prompt)
	assert.Equal(t, []string{"abc", "def"}, f.Lines, "the prompt owner stays on screen")
	assert.False(t, f.Selected)
}

func TestFrameWithoutDocument(t *testing.T) {
	e := New(Options{})
	f := e.Frame()
	assert.Nil(t, f.Lines)
	assert.Empty(t, f.Name)
}

func TestSetKeymap(t *testing.T) {
	e, doc, _ := newEditor(t, "abc")

	km := keymap.Default()
	require.NoError(t, km.Add(keymap.Binding{
		Keys:    "Q",
		Modes:   []mode.Mode{mode.Normal},
		Kind:    keymap.KindMotion,
		Command: string(vim.MotionRight),
	}))
	e.SetKeymap(km)
	e.SetKeymap(nil)

	feed(t, e, "QQ")
	assert.Equal(t, 2, doc.Cursor())
}

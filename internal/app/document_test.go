package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/state"
)

func newDocument(t *testing.T, text string) *Document {
	t.Helper()
	doc := NewDocument(state.NewSession(nil), "doc", text, nil)
	require.NoError(t, doc.State().Init())
	return doc
}

func TestOperatorActsOnExistingSelection(t *testing.T) {
	e, doc, _ := newEditor(t, "abcdef")
	doc.Select(1, 4)

	feed(t, e, "d")

	assert.Equal(t, "aef", doc.Text())
	assert.Equal(t, 1, doc.Cursor())
	assert.True(t, doc.State().Pending().IsIdle())
}

func TestRunRejectsUnknownCommands(t *testing.T) {
	doc := newDocument(t, "abc")

	err := doc.Run(execctx.Command("no_such_command", nil))
	assert.ErrorIs(t, err, ErrUnknownHostCommand)

	err = doc.Run(execctx.Invocation{Command: execctx.RunCommand})
	assert.ErrorIs(t, err, ErrMissingContext)

	ctx := execctx.New().WithMode(mode.Normal).WithMotionStep("_vi_teleport", nil)
	err = doc.Run(execctx.Run(ctx))
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestHostInsertAndDelete(t *testing.T) {
	doc := newDocument(t, "")
	require.NoError(t, doc.State().Controller().Enter(mode.Insert))
	doc.MarkUndoGroupsForGluing()

	insert := func(s string) execctx.Invocation {
		return execctx.Command(resolver.HostInsertText, execctx.Args{resolver.ArgCharacters: s})
	}
	require.NoError(t, doc.Run(insert("héllo")))
	require.NoError(t, doc.Run(execctx.Command(resolver.HostDeleteLeft, nil)))
	require.NoError(t, doc.Run(insert("\n")))

	assert.Equal(t, "héll\n", doc.Text())
	assert.Equal(t, 5, doc.Cursor())
	assert.Equal(t, 3, doc.History().UndoCount())

	require.NoError(t, doc.Run(execctx.Command(resolver.HostExitInsertMode, nil)))
	assert.Equal(t, mode.Normal, doc.Mode())
	assert.Equal(t, 1, doc.History().UndoCount(), "the insert is glued into one entry")
}

func TestEnterNormalCollapsesVisual(t *testing.T) {
	doc := newDocument(t, "abcdef")
	require.NoError(t, doc.State().Controller().Enter(mode.Visual))
	doc.vcursor = 3
	doc.syncVisual(mode.Visual)
	require.Equal(t, 4, doc.Selection().Head)

	require.NoError(t, doc.Run(execctx.Command(resolver.HostEnterNormalMode, nil)))

	assert.Equal(t, mode.Normal, doc.Mode())
	assert.Equal(t, 3, doc.Cursor())
	x, ok := doc.State().Controller().XPos()
	assert.True(t, ok)
	assert.Equal(t, 3, x)
}

func TestWordMotions(t *testing.T) {
	doc := newDocument(t, "foo.bar  baz\n  qux")

	assert.Equal(t, 3, doc.wordForward(0))
	assert.Equal(t, 4, doc.wordForward(3))
	assert.Equal(t, 9, doc.wordForward(4))
	assert.Equal(t, 15, doc.wordForward(9))
	assert.Equal(t, 2, doc.wordEnd(0))
	assert.Equal(t, 11, doc.wordEnd(7))
	assert.Equal(t, 9, doc.wordBackward(15))
	assert.Equal(t, 0, doc.wordBackward(2))
}

func TestLastRowIgnoresTrailingNewline(t *testing.T) {
	assert.Equal(t, 1, newDocument(t, "a\nb\n").lastRow())
	assert.Equal(t, 1, newDocument(t, "a\nb").lastRow())
	assert.Equal(t, 0, newDocument(t, "").lastRow())
}

func TestPatternCache(t *testing.T) {
	c := NewPatternCache()

	re := c.Compile(`b+`)
	assert.Same(t, re, c.Compile(`b+`))
	assert.Equal(t, 1, c.Len())

	literal := c.Compile(`a(`)
	assert.True(t, literal.MatchString("xa(y"))
	assert.Equal(t, 2, c.Len())
}

package execctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

func TestNew(t *testing.T) {
	ctx := execctx.New()

	assert.Equal(t, 1, ctx.Count)
	assert.True(t, ctx.MotionRequired)
	assert.True(t, ctx.MarkGroupsForGluing)
	assert.Equal(t, mode.Normal, ctx.ExitMode)
	assert.Equal(t, mode.None, ctx.ChangeModeTo)
}

func TestFromPending(t *testing.T) {
	var p vim.Pending
	p.PushActionDigit('2')
	p.SetAction(vim.ActionDelete)
	p.PushMotionDigit('3')
	p.SetMotion(vim.MotionFindChar)
	p.SetRegister('a')
	p.SetLastCharacterSearch('x')

	ctx := execctx.FromPending(&p, mode.InternalNormal, 7)

	assert.Equal(t, vim.ActionDelete, ctx.Action)
	assert.Equal(t, vim.MotionFindChar, ctx.Motion)
	assert.Equal(t, 6, ctx.Count)
	assert.True(t, ctx.HasUserCount)
	assert.Equal(t, 6, ctx.UserCount)
	assert.Equal(t, 'a', ctx.Register)
	assert.Equal(t, 'x', ctx.LastCharacterSearch)
	assert.Equal(t, 7, ctx.XPos)
	assert.True(t, ctx.IsOperatorPending())
}

func TestFromPendingWithoutCount(t *testing.T) {
	var p vim.Pending
	p.SetMotion(vim.MotionGotoLine)

	ctx := execctx.FromPending(&p, mode.Normal, 0)

	assert.Equal(t, 1, ctx.Count)
	assert.False(t, ctx.HasUserCount)
}

func TestWithBuilders(t *testing.T) {
	base := execctx.New()
	ctx := base.
		WithCount(10).
		WithCount(-1).
		WithMode(mode.Visual).
		WithMotionStep("move", execctx.Args{"by": "lines"})

	assert.Equal(t, 10, ctx.GetCount())
	assert.Equal(t, mode.Visual, ctx.Mode)
	assert.Equal(t, "lines", ctx.MotionStep.Args.String("by"))
	assert.True(t, base.MotionStep.IsZero(), "builders return copies")
}

func TestValidate(t *testing.T) {
	ctx := execctx.New()
	assert.ErrorIs(t, ctx.Validate(), execctx.ErrEmptyCommand)

	ctx = ctx.WithActionStep("delete", nil)
	assert.ErrorIs(t, ctx.Validate(), execctx.ErrMissingMotion)

	ctx.MotionRequired = false
	assert.NoError(t, ctx.Validate())

	ctx = execctx.New().WithMotionStep("move", nil)
	assert.NoError(t, ctx.Validate())
}

func TestArgs(t *testing.T) {
	args := execctx.Args{
		"n":    3,
		"f":    float64(4),
		"s":    "text",
		"r":    'q',
		"one":  "z",
		"flag": true,
	}

	assert.Equal(t, 3, args.Int("n"))
	assert.Equal(t, 4, args.Int("f"))
	assert.Equal(t, 0, args.Int("missing"))
	assert.Equal(t, "text", args.String("s"))
	assert.Equal(t, "q", args.String("r"))
	assert.Equal(t, 'z', args.Rune("one"))
	assert.True(t, args.Bool("flag"))

	var empty execctx.Args
	assert.Equal(t, "", empty.String("s"))
	assert.Nil(t, empty.Clone())
}

func TestInvocationEqual(t *testing.T) {
	ctx := execctx.New()
	ctx.Action = vim.ActionDeleteLine

	a := execctx.Run(ctx)
	b := execctx.Run(ctx)
	assert.True(t, a.Equal(b))
	assert.True(t, a.HasAction())

	ctx.Count = 2
	assert.False(t, a.Equal(execctx.Run(ctx)))

	x := execctx.Command("insert", execctx.Args{"text": "a"})
	y := execctx.Command("insert", execctx.Args{"text": "a"})
	assert.True(t, x.Equal(y))
	assert.False(t, x.HasAction())

	seq := execctx.Sequence(a, x)
	assert.True(t, seq.Equal(execctx.Sequence(b, y)))
	assert.False(t, seq.Equal(execctx.Sequence(y, b)))
	assert.True(t, execctx.Invocation{}.IsZero())
}

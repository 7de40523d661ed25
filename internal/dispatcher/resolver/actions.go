package resolver

import (
	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

// Host commands the buffer layer runs outside the evaluator.
const (
	HostEnterNormalMode           = "enter_normal_mode"
	HostExitInsertMode            = "exit_insert_mode"
	HostRunNormalInsertModeAction = "run_normal_insert_mode_actions"
	HostInsertText                = "insert"
	HostDeleteLeft                = "left_delete"
)

// ArgCharacters is the text argument of HostInsertText.
const ArgCharacters = "characters"

var builtinActions = map[vim.Name]ActionFunc{
	vim.ActionDelete:          operator(StepDelete, mode.Normal),
	vim.ActionChange:          operator(StepChange, mode.Insert),
	vim.ActionYank:            operator(StepYank, mode.Normal),
	vim.ActionIndent:          operatorWith(StepShift, mode.Normal, execctx.Args{ArgDelta: 1}),
	vim.ActionUnindent:        operatorWith(StepShift, mode.Normal, execctx.Args{ArgDelta: -1}),
	vim.ActionUppercase:       operatorWith(StepChangeCase, mode.Normal, execctx.Args{ArgUpper: true}),
	vim.ActionLowercase:       operatorWith(StepChangeCase, mode.Normal, execctx.Args{ArgUpper: false}),
	vim.ActionDeleteLine:      lineOperator(StepDelete, mode.Normal, nil),
	vim.ActionChangeLine:      lineOperator(StepChange, mode.Insert, nil),
	vim.ActionYankLine:        lineOperator(StepYank, mode.Normal, nil),
	vim.ActionIndentLine:      lineOperator(StepShift, mode.Normal, execctx.Args{ArgDelta: 1}),
	vim.ActionUnindentLine:    lineOperator(StepShift, mode.Normal, execctx.Args{ArgDelta: -1}),
	vim.ActionUppercaseLine:   lineOperator(StepChangeCase, mode.Normal, execctx.Args{ArgUpper: true}),
	vim.ActionLowercaseLine:   lineOperator(StepChangeCase, mode.Normal, execctx.Args{ArgUpper: false}),
	vim.ActionGPrefix:         gPrefixAction,
	vim.ActionDeleteChar:      deleteChar,
	vim.ActionPasteAfter:      paste(false),
	vim.ActionPasteBefore:     paste(true),
	vim.ActionInsert:          enterInsert(InsertBefore),
	vim.ActionAppend:          enterInsert(InsertAfter),
	vim.ActionInsertLineStart: enterInsert(InsertLineStart),
	vim.ActionAppendLineEnd:   enterInsert(InsertLineEnd),
	vim.ActionOpenBelow:       openBelow,
	vim.ActionOpenAbove:       enterInsert(InsertAbove),
	vim.ActionVisual:          visual(mode.Visual),
	vim.ActionVisualLine:      visual(mode.VisualLine),
	vim.ActionReplaceChar:     replaceChar,
	vim.ActionReplaceMode:     replaceMode,
	vim.ActionSetMark:         setMark,
	vim.ActionUndo:            undoRedo(StepUndo),
	vim.ActionRedo:            undoRedo(StepRedo),
	vim.ActionRepeat:          repeat,
	vim.ActionEsc:             esc,
	vim.ActionInsertRegister:  insertRegister,
}

// registerArg returns the selected register as an argument, "" for none.
func registerArg(ctx execctx.Context) string {
	if ctx.Register == 0 {
		return ""
	}
	return string(ctx.Register)
}

// noMotion marks ctx as complete without a motion.
func noMotion(ctx execctx.Context) execctx.Context {
	ctx.MotionRequired = false
	return ctx
}

// leaveVisual makes a cancelled or finished visual command collapse the
// selection.
func leaveVisual(ctx execctx.Context) execctx.Context {
	if ctx.Mode.IsVisual() {
		ctx.ExitModeCommand = HostEnterNormalMode
	}
	return ctx
}

func operator(step string, then mode.Mode) ActionFunc {
	return operatorWith(step, then, nil)
}

// operatorWith resolves an operator that acts on the extent of a motion or
// of the current selection.
func operatorWith(step string, then mode.Mode, extra execctx.Args) ActionFunc {
	return func(ctx execctx.Context) execctx.Context {
		args := extra.Clone()
		if args == nil {
			args = execctx.Args{}
		}
		args[ArgRegister] = registerArg(ctx)
		if ctx.Mode == mode.VisualLine {
			args[ArgLinewise] = true
		}
		ctx.MustBlinkOnError = true
		ctx.CanYank = step != StepShift && step != StepChangeCase
		ctx.YanksLinewise = ctx.Mode == mode.VisualLine
		ctx.FollowUpMode = then
		ctx = leaveVisual(ctx)
		return ctx.WithActionStep(step, args)
	}
}

// lineOperator resolves the doubled form of an operator, which acts on
// count whole lines.
func lineOperator(step string, then mode.Mode, extra execctx.Args) ActionFunc {
	return func(ctx execctx.Context) execctx.Context {
		args := extra.Clone()
		if args == nil {
			args = execctx.Args{}
		}
		args[ArgRegister] = registerArg(ctx)
		args[ArgLinewise] = true
		ctx = noMotion(ctx)
		ctx.CanYank = step != StepShift && step != StepChangeCase
		ctx.YanksLinewise = true
		ctx.FollowUpMode = then
		ctx = ctx.WithMotionStep(StepSelectLines, execctx.Args{ArgCount: ctx.GetCount()})
		return ctx.WithActionStep(step, args)
	}
}

// gPrefixAction is the first g of gg, gU and gu.
func gPrefixAction(ctx execctx.Context) execctx.Context {
	ctx.IsDigraphStart = true
	ctx.MustBlinkOnError = true
	return ctx
}

func deleteChar(ctx execctx.Context) execctx.Context {
	ctx = noMotion(ctx)
	ctx.CanYank = true
	ctx.FollowUpMode = mode.Normal
	if ctx.Mode.IsVisual() {
		ctx = leaveVisual(ctx)
		return ctx.WithActionStep(StepDelete, execctx.Args{ArgRegister: registerArg(ctx)})
	}
	return ctx.WithActionStep(StepDeleteChar, execctx.Args{
		ArgCount:    ctx.GetCount(),
		ArgRegister: registerArg(ctx),
	})
}

func paste(before bool) ActionFunc {
	return func(ctx execctx.Context) execctx.Context {
		ctx = noMotion(ctx)
		ctx.FollowUpMode = mode.Normal
		return ctx.WithActionStep(StepPaste, execctx.Args{
			ArgCount:    ctx.GetCount(),
			ArgBackward: before,
			ArgRegister: registerArg(ctx),
		})
	}
}

// enterInsert starts an insert. With a count above one the surface enters
// NormalInsert so the typed text can be repeated on exit.
func enterInsert(where string) ActionFunc {
	return func(ctx execctx.Context) execctx.Context {
		ctx = noMotion(ctx)
		ctx.FollowUpMode = mode.Insert
		if ctx.GetCount() > 1 {
			ctx.FollowUpMode = mode.NormalInsert
		}
		return ctx.WithActionStep(StepEnterInsert, execctx.Args{ArgWhere: where})
	}
}

// openBelow is o. In visual modes o moves the caret to the other end of
// the selection, which is a motion.
func openBelow(ctx execctx.Context) execctx.Context {
	if ctx.Mode.IsVisual() {
		ctx.ReclassifyAsMotion = vim.MotionReverseCaret
		return noMotion(ctx)
	}
	return enterInsert(InsertBelow)(ctx)
}

func visual(target mode.Mode) ActionFunc {
	return func(ctx execctx.Context) execctx.Context {
		ctx = noMotion(ctx)
		ctx.Irreversible = true
		ctx.MarkGroupsForGluing = false
		ctx.FollowUpMode = target
		if ctx.Mode == target {
			ctx.FollowUpMode = mode.Normal
		}
		return ctx.WithActionStep(StepVisual, execctx.Args{ArgLinewise: target == mode.VisualLine})
	}
}

func replaceChar(ctx execctx.Context) execctx.Context {
	ctx = noMotion(ctx)
	ctx.FollowUpMode = mode.Normal
	ctx = leaveVisual(ctx)
	return ctx.WithActionStep(StepReplaceChar, execctx.Args{
		ArgChar:  ctx.UserInput,
		ArgCount: ctx.GetCount(),
	})
}

func replaceMode(ctx execctx.Context) execctx.Context {
	ctx = noMotion(ctx)
	ctx.FollowUpMode = mode.Replace
	return ctx.WithActionStep(StepEnterReplace, nil)
}

func setMark(ctx execctx.Context) execctx.Context {
	ctx = noMotion(ctx)
	ctx.Irreversible = true
	ctx.MarkGroupsForGluing = false
	return ctx.WithActionStep(StepSetMark, execctx.Args{ArgMark: ctx.UserInput})
}

func undoRedo(step string) ActionFunc {
	return func(ctx execctx.Context) execctx.Context {
		ctx = noMotion(ctx)
		ctx.Irreversible = true
		ctx.MarkGroupsForGluing = false
		return ctx.WithActionStep(step, execctx.Args{ArgCount: ctx.GetCount()})
	}
}

func repeat(ctx execctx.Context) execctx.Context {
	ctx = noMotion(ctx)
	ctx.Irreversible = true
	args := execctx.Args{}
	if ctx.HasUserCount {
		args[ArgCount] = ctx.UserCount
	}
	return ctx.WithActionStep(StepRepeat, args)
}

func esc(ctx execctx.Context) execctx.Context {
	ctx = noMotion(ctx)
	ctx.Irreversible = true
	ctx.MarkGroupsForGluing = false
	ctx.FollowUpMode = mode.Normal
	return ctx.WithActionStep(StepEsc, nil)
}

// insertRegister is CTRL-R in insert mode. Without a register it is the
// start of a digraph that drops to Normal to read the register name; an
// invalid follow-up key returns to Insert.
func insertRegister(ctx execctx.Context) execctx.Context {
	if ctx.Register == 0 {
		ctx.IsDigraphStart = true
		ctx.MustBlinkOnError = true
		ctx.ChangeModeTo = mode.Normal
		ctx.ExitMode = mode.Insert
		return ctx
	}
	ctx = noMotion(ctx)
	ctx.FollowUpMode = mode.Insert
	return ctx.WithActionStep(StepInsertRegister, execctx.Args{ArgRegister: registerArg(ctx)})
}

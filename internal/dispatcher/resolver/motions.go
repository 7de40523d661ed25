package resolver

import (
	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/input/vim"
)

var builtinMotions = map[vim.Name]MotionFunc{
	vim.MotionLeft:             charMotion(-1),
	vim.MotionRight:            charMotion(1),
	vim.MotionDown:             lineMotion(1),
	vim.MotionUp:               lineMotion(-1),
	vim.MotionWordForward:      wordMotion(false, false),
	vim.MotionWordBackward:     wordMotion(true, false),
	vim.MotionWordEnd:          wordMotion(false, true),
	vim.MotionLineStart:        lineStart,
	vim.MotionLineEnd:          lineEnd,
	vim.MotionFirstNonBlank:    firstNonBlank,
	vim.MotionGotoLine:         gotoLine(0),
	vim.MotionGotoFirstLine:    gotoLine(1),
	vim.MotionGPrefix:          gPrefixMotion,
	vim.MotionFindChar:         findChar(false, false),
	vim.MotionFindCharBackward: findChar(true, false),
	vim.MotionTillChar:         findChar(false, true),
	vim.MotionTillCharBackward: findChar(true, true),
	vim.MotionRepeatCharSearch: repeatCharSearch,
	vim.MotionSearch:           search,
	vim.MotionSearchNext:       searchNext,
	vim.MotionGotoMark:         gotoMark,
	vim.MotionReverseCaret:     reverseCaret,
}

func charMotion(dir int) MotionFunc {
	return func(ctx execctx.Context) execctx.Context {
		return ctx.WithMotionStep(StepMoveChars, execctx.Args{ArgDelta: dir * ctx.GetCount()})
	}
}

func lineMotion(dir int) MotionFunc {
	return func(ctx execctx.Context) execctx.Context {
		ctx.AlignWithXPos = true
		return ctx.WithMotionStep(StepMoveLines, execctx.Args{
			ArgDelta:    dir * ctx.GetCount(),
			ArgLinewise: true,
		})
	}
}

func wordMotion(backward, end bool) MotionFunc {
	return func(ctx execctx.Context) execctx.Context {
		return ctx.WithMotionStep(StepMoveWords, execctx.Args{
			ArgCount:     ctx.GetCount(),
			ArgBackward:  backward,
			ArgEnd:       end,
			ArgInclusive: end,
		})
	}
}

func lineStart(ctx execctx.Context) execctx.Context {
	return ctx.WithMotionStep(StepLineStart, nil)
}

func lineEnd(ctx execctx.Context) execctx.Context {
	return ctx.WithMotionStep(StepLineEnd, execctx.Args{
		ArgCount:     ctx.GetCount(),
		ArgInclusive: true,
	})
}

func firstNonBlank(ctx execctx.Context) execctx.Context {
	return ctx.WithMotionStep(StepFirstNonBlank, nil)
}

// gotoLine jumps to the counted line, or to fallback without a count.
// A fallback of 0 means the last line.
func gotoLine(fallback int) MotionFunc {
	return func(ctx execctx.Context) execctx.Context {
		line := fallback
		if ctx.HasUserCount {
			line = ctx.UserCount
		}
		ctx.IsJump = true
		return ctx.WithMotionStep(StepGotoLine, execctx.Args{
			ArgLine:     line,
			ArgLinewise: true,
		})
	}
}

// gPrefixMotion is the first g of an operator-pending gg.
func gPrefixMotion(ctx execctx.Context) execctx.Context {
	ctx.IsDigraphStart = true
	return ctx
}

func findChar(backward, till bool) MotionFunc {
	return func(ctx execctx.Context) execctx.Context {
		target := ctx.LastCharacterSearch
		if r := []rune(ctx.UserInput); len(r) > 0 {
			target = r[0]
		}
		return ctx.WithMotionStep(StepFindChar, execctx.Args{
			ArgChar:      charArg(target),
			ArgCount:     ctx.GetCount(),
			ArgBackward:  backward,
			ArgTill:      till,
			ArgInclusive: !backward,
		})
	}
}

func repeatCharSearch(ctx execctx.Context) execctx.Context {
	return ctx.WithMotionStep(StepFindChar, execctx.Args{
		ArgChar:      charArg(ctx.LastCharacterSearch),
		ArgCount:     ctx.GetCount(),
		ArgInclusive: true,
	})
}

func search(ctx execctx.Context) execctx.Context {
	pattern := ctx.UserInput
	if pattern == "" {
		pattern = ctx.LastBufferSearch
	}
	ctx.IsJump = true
	return ctx.WithMotionStep(StepSearch, execctx.Args{
		ArgPattern: pattern,
		ArgCount:   ctx.GetCount(),
	})
}

func searchNext(ctx execctx.Context) execctx.Context {
	ctx.IsJump = true
	return ctx.WithMotionStep(StepSearch, execctx.Args{
		ArgPattern: ctx.LastBufferSearch,
		ArgCount:   ctx.GetCount(),
	})
}

func gotoMark(ctx execctx.Context) execctx.Context {
	ctx.IsJump = true
	return ctx.WithMotionStep(StepGotoMark, execctx.Args{
		ArgMark:     ctx.UserInput,
		ArgLinewise: true,
	})
}

func reverseCaret(ctx execctx.Context) execctx.Context {
	return ctx.WithMotionStep(StepReverseCaret, nil)
}

func charArg(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}

package keymap

import (
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

var (
	commandModes = []mode.Mode{mode.Normal, mode.Visual, mode.VisualLine}
	normalOnly   = []mode.Mode{mode.Normal}
	visualModes  = []mode.Mode{mode.Visual, mode.VisualLine}
	textModes    = []mode.Mode{mode.Insert, mode.Replace, mode.NormalInsert}
)

func action(keys string, name vim.Name) Binding {
	return Binding{Keys: keys, Kind: KindAction, Command: string(name), Modes: commandModes}
}

func motion(keys string, name vim.Name) Binding {
	return Binding{Keys: keys, Kind: KindMotion, Command: string(name), Modes: commandModes}
}

func host(keys, command string, modes ...mode.Mode) Binding {
	return Binding{Keys: keys, Kind: KindHost, Command: command, Modes: modes}
}

// DefaultBindings returns the built-in bindings.
func DefaultBindings() []Binding {
	return []Binding{
		motion("h", vim.MotionLeft),
		motion("<Left>", vim.MotionLeft),
		motion("j", vim.MotionDown),
		motion("<Down>", vim.MotionDown),
		motion("k", vim.MotionUp),
		motion("<Up>", vim.MotionUp),
		motion("l", vim.MotionRight),
		motion("<Right>", vim.MotionRight),
		motion("w", vim.MotionWordForward),
		motion("b", vim.MotionWordBackward),
		motion("e", vim.MotionWordEnd),
		motion("0", vim.MotionLineStart),
		motion("<Home>", vim.MotionLineStart),
		motion("$", vim.MotionLineEnd),
		motion("<End>", vim.MotionLineEnd),
		motion("^", vim.MotionFirstNonBlank),
		motion("G", vim.MotionGotoLine),
		motion("f", vim.MotionFindChar).Reading(InputChar),
		motion("F", vim.MotionFindCharBackward).Reading(InputChar),
		motion("t", vim.MotionTillChar).Reading(InputChar),
		motion("T", vim.MotionTillCharBackward).Reading(InputChar),
		motion(";", vim.MotionRepeatCharSearch),
		motion("/", vim.MotionSearch).Reading(InputLine),
		motion("n", vim.MotionSearchNext),
		motion("'", vim.MotionGotoMark).Reading(InputChar),

		// g is a two-key command in every position it can appear.
		action("g", vim.ActionGPrefix),
		action("g", vim.MotionGotoFirstLine).When(vim.ActionGPrefix),
		motion("g", vim.MotionGPrefix).OperatorPending(),
		motion("g", vim.MotionGotoFirstLine).When(vim.MotionGPrefix),
		action("U", vim.ActionUppercase).When(vim.ActionGPrefix),
		action("U", vim.ActionUppercase).When(vim.ActionUppercase),
		action("u", vim.ActionLowercase).When(vim.ActionGPrefix),
		action("u", vim.ActionLowercase).When(vim.ActionLowercase),

		action("d", vim.ActionDelete),
		action("c", vim.ActionChange),
		action("y", vim.ActionYank),
		action(">", vim.ActionIndent),
		action("<lt>", vim.ActionUnindent),
		action("x", vim.ActionDeleteChar),
		action("<Del>", vim.ActionDeleteChar),
		action("p", vim.ActionPasteAfter),
		action("P", vim.ActionPasteBefore),
		action("i", vim.ActionInsert).In(normalOnly...),
		action("a", vim.ActionAppend).In(normalOnly...),
		action("I", vim.ActionInsertLineStart).In(normalOnly...),
		action("A", vim.ActionAppendLineEnd).In(normalOnly...),
		action("o", vim.ActionOpenBelow),
		action("O", vim.ActionOpenAbove).In(normalOnly...),
		action("v", vim.ActionVisual),
		action("V", vim.ActionVisualLine),
		action("r", vim.ActionReplaceChar).Reading(InputChar),
		action("R", vim.ActionReplaceMode).In(normalOnly...),
		action("m", vim.ActionSetMark).Reading(InputChar).In(normalOnly...),
		action("u", vim.ActionUndo).In(normalOnly...),
		action("U", vim.ActionUppercase).In(visualModes...),
		action("u", vim.ActionLowercase).In(visualModes...),
		action("<C-r>", vim.ActionRedo).In(normalOnly...),
		action(".", vim.ActionRepeat).In(normalOnly...),
		action("<Esc>", vim.ActionEsc),
		{Keys: `"`, Kind: KindRegister, Modes: commandModes},

		action("<C-r>", vim.ActionInsertRegister).Reading(InputRegister).In(mode.Insert),
		host("<Esc>", resolver.HostExitInsertMode, mode.Insert, mode.Replace),
		host("<Esc>", resolver.HostRunNormalInsertModeAction, mode.NormalInsert),
		host("<BS>", resolver.HostDeleteLeft, textModes...),
	}
}

// Default returns a keymap with the built-in bindings.
func Default() *Keymap {
	k := New()
	if err := k.AddAll(DefaultBindings()...); err != nil {
		panic(err)
	}
	return k
}

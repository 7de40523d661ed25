package state

import (
	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/input/mode"
)

// fakeView records what the state machine asks of the buffer layer. Run
// applies follow-up modes and logs undoable commands to its history.
type fakeView struct {
	text        *buffer.Buffer
	sels        []buffer.Selection
	commandMode bool
	cursor      mode.CursorStyle
	overwrite   bool
	widget      bool

	runs    []execctx.Invocation
	log     []execctx.Invocation
	blinks  int
	marks   int
	glues   int
	runErr  error
	state   *State
	display []string
}

func newFakeView(text string, sels ...buffer.Selection) *fakeView {
	if len(sels) == 0 {
		sels = []buffer.Selection{buffer.Caret(0)}
	}
	return &fakeView{text: buffer.NewFromString(text), sels: sels}
}

func (f *fakeView) Selections() []buffer.Selection { return f.sels }
func (f *fakeView) RowCol(offset int) (int, int)   { return f.text.RowCol(offset) }
func (f *fakeView) SetCommandMode(on bool)         { f.commandMode = on }
func (f *fakeView) SetCursorStyle(s mode.CursorStyle) {
	f.cursor = s
}
func (f *fakeView) Overwrite() bool          { return f.overwrite }
func (f *fakeView) SetOverwrite(on bool)     { f.overwrite = on }
func (f *fakeView) EraseOverlay(string)      {}
func (f *fakeView) GlueMarkedUndoGroups()    { f.glues++ }
func (f *fakeView) IsWidget() bool           { return f.widget }
func (f *fakeView) MarkUndoGroupsForGluing() { f.marks++ }
func (f *fakeView) Blink()                   { f.blinks++ }

func (f *fakeView) Run(inv execctx.Invocation) error {
	f.runs = append(f.runs, inv)
	if f.runErr != nil {
		return f.runErr
	}
	if ctx := inv.Context; ctx != nil {
		if !ctx.Irreversible {
			f.log = append(f.log, inv)
		}
		if ctx.FollowUpMode != mode.None && f.state != nil {
			return f.state.Controller().Enter(ctx.FollowUpMode)
		}
	}
	return nil
}

func (f *fakeView) MostRecent(bool) (execctx.Invocation, int, bool) {
	if len(f.log) == 0 {
		return execctx.Invocation{}, 0, false
	}
	return f.log[len(f.log)-1], 1, true
}

func (f *fakeView) Show(text string) { f.display = append(f.display, text) }

func (f *fakeView) lastRun() execctx.Invocation {
	if len(f.runs) == 0 {
		return execctx.Invocation{}
	}
	return f.runs[len(f.runs)-1]
}

// newTestState creates a state in Normal mode over view.
func newTestState(view *fakeView) *State {
	st := New(NewSession(nil), view, view, view)
	view.state = st
	if err := st.Controller().Enter(mode.Normal); err != nil {
		panic(err)
	}
	return st
}

// fakeHistory serves a fixed command for repeat tests.
type fakeHistory struct {
	inv   execctx.Invocation
	times int
}

func (h *fakeHistory) MostRecent(bool) (execctx.Invocation, int, bool) {
	return h.inv, h.times, !h.inv.IsZero()
}

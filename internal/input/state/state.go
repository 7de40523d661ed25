package state

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/logging"
)

// View is the buffer/view layer of one surface.
type View interface {
	mode.Surface

	// IsWidget reports whether the surface is an auxiliary input widget
	// rather than a document.
	IsWidget() bool

	// MarkUndoGroupsForGluing starts collecting edits into one undo unit.
	MarkUndoGroupsForGluing()

	// Run executes a command.
	Run(inv execctx.Invocation) error

	// Blink gives visible feedback for a rejected chord.
	Blink()
}

// History exposes the command log of the view.
type History interface {
	// MostRecent returns the newest command, how many times in a row it
	// ran, and whether there is one.
	MostRecent(skipAutomatic bool) (execctx.Invocation, int, bool)
}

// StatusDisplay shows a line of status text. Failures are not reported.
type StatusDisplay interface {
	Show(text string)
}

// StatusFunc adapts a function to StatusDisplay.
type StatusFunc func(text string)

// Show calls f(text).
func (f StatusFunc) Show(text string) {
	f(text)
}

// State is the command state of one surface.
//
// State is not safe for concurrent use; key events are processed one at a
// time.
type State struct {
	id      string
	session *Session
	view    View
	history History
	status  StatusDisplay
	ctrl    *mode.Controller
	pending vim.Pending
	log     *logging.Logger
}

// New creates the state for view and attaches it to session. A nil status
// display discards status text.
func New(session *Session, view View, history History, status StatusDisplay) *State {
	if status == nil {
		status = StatusFunc(func(string) {})
	}
	id := uuid.NewString()
	st := &State{
		id:      id,
		session: session,
		view:    view,
		history: history,
		status:  status,
		ctrl:    mode.NewController(view),
		log:     session.log.WithField("surface", id),
	}
	session.attach(st)
	return st
}

// ID returns the unique identifier of the state.
func (s *State) ID() string {
	return s.id
}

// Session returns the shared session.
func (s *State) Session() *Session {
	return s.session
}

// Controller returns the mode controller.
func (s *State) Controller() *mode.Controller {
	return s.ctrl
}

// Mode returns the current mode.
func (s *State) Mode() mode.Mode {
	return s.ctrl.Current()
}

// Pending returns the chord being typed.
func (s *State) Pending() *vim.Pending {
	return &s.pending
}

// Init brings the surface into a coherent Normal state, as when it gains
// focus after another surface. Widgets are ignored, and a pending
// SuppressNextInit on the session makes the call a no-op once.
func (s *State) Init() error {
	if s.view.IsWidget() {
		return nil
	}
	if s.session.consumeSuppressedInit() {
		s.log.Debug("init suppressed")
		return nil
	}

	var err error
	switch cur := s.ctrl.Current(); cur {
	case mode.Visual, mode.VisualLine:
		err = s.run(execctx.Command(resolver.HostEnterNormalMode, nil))
	case mode.Insert, mode.Replace:
		err = s.run(execctx.Command(resolver.HostExitInsertMode, nil))
	case mode.NormalInsert:
		err = s.run(execctx.Command(resolver.HostRunNormalInsertModeAction, nil))
	default:
		err = s.ctrl.Enter(mode.Normal)
	}
	err = errors.Join(err, s.Reset())
	s.UpdateStatus()
	return err
}

// UpdateXPos recomputes the cached column from the first selection. In
// Visual mode a forward selection measures its last selected character.
func (s *State) UpdateXPos() {
	sels := s.view.Selections()
	if len(sels) == 0 {
		return
	}
	first := sels[0]
	xpos := 0
	switch s.ctrl.Current() {
	case mode.Visual:
		if first.Anchor < first.Head {
			_, xpos = s.view.RowCol(first.Head - 1)
		} else if first.Anchor > first.Head {
			_, xpos = s.view.RowCol(first.Head)
		}
	case mode.Normal:
		_, xpos = s.view.RowCol(first.Head)
	}
	s.ctrl.SetXPos(xpos)
}

// UpdateStatus shows the current mode in the status display.
func (s *State) UpdateStatus() {
	name := s.ctrl.Current().DisplayName()
	if name == "" {
		s.status.Show("")
		return
	}
	s.status.Show(fmt.Sprintf(s.session.statusFormat, name))
}

// run sends inv to the view and logs failures.
func (s *State) run(inv execctx.Invocation) error {
	if err := s.view.Run(inv); err != nil {
		s.log.Error("command failed", "command", inv.Command, "error", err)
		return fmt.Errorf("run %s: %w", inv.Command, err)
	}
	return nil
}

func (s *State) hasNonEmptySelection() bool {
	for _, sel := range s.view.Selections() {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// Run sends a host command to the view outside of chord evaluation.
func (s *State) Run(inv execctx.Invocation) error {
	return s.run(inv)
}

package state

import (
	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/input/mode"
)

// Reset ends the current chord. It updates the repeat record when an
// action was pending, clears the chord and, outside NormalInsert, clears
// the count and applies the deferred mode transition.
func (s *State) Reset() error {
	if s.pending.Action() != "" {
		s.session.UpdateRepeat(s.history)
	}
	s.pending.ClearCommand()

	// A counted insert needs its count when it ends.
	if s.ctrl.Current() == mode.NormalInsert {
		return nil
	}
	s.pending.ClearDigits()

	var err error
	cmd := s.pending.NextModeCommand()
	switch s.pending.NextMode() {
	case mode.Insert:
		err = s.ctrl.Enter(mode.Insert)
		if err == nil && cmd != "" {
			err = s.run(execctx.Command(cmd, nil))
		}
	case mode.Normal:
		if cmd != "" {
			err = s.run(execctx.Command(cmd, nil))
		}
	}
	s.pending.ClearDeferred()
	return err
}

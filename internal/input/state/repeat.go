package state

import (
	"github.com/dshills/vicore/internal/dispatcher/execctx"
)

// RepeatRecord is the last repeatable command.
type RepeatRecord struct {
	Invocation execctx.Invocation
	Times      int
}

// Repeat returns the last repeatable command, if any.
func (s *Session) Repeat() (RepeatRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeat, s.hasRepeat
}

// UpdateRepeat compares the newest undoable command in h with the stored
// record and replaces the record when they differ.
//
// History views re-surface older commands while the user undoes, so every
// branch compares before overwriting:
//   - a RunCommand with an action replaces a different record, or seeds
//     an empty one;
//   - a SequenceCommand replaces a non-sequence record, or a sequence
//     record that differs in any step of their common prefix;
//   - any other command replaces a different record, but never seeds an
//     empty one.
func (s *Session) UpdateRepeat(h History) {
	if h == nil {
		return
	}
	inv, times, ok := h.MostRecent(true)
	if !ok || inv.IsZero() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case inv.Command == execctx.RunCommand:
		if !inv.HasAction() {
			return
		}
		if s.hasRepeat && s.repeat.Invocation.Equal(inv) {
			return
		}
	case inv.Command == execctx.SequenceCommand:
		if !s.hasRepeat {
			return
		}
		old := s.repeat.Invocation
		if old.Command == execctx.SequenceCommand && !stepsDiffer(old.Steps, inv.Steps) {
			return
		}
	default:
		if !s.hasRepeat || s.repeat.Invocation.Equal(inv) {
			return
		}
	}

	s.repeat = RepeatRecord{Invocation: inv, Times: times}
	s.hasRepeat = true
	s.log.Debug("repeat record updated", "command", inv.Command)
}

// stepsDiffer compares two step lists pairwise over their common prefix.
func stepsDiffer(old, cur []execctx.Invocation) bool {
	n := min(len(old), len(cur))
	for i := range n {
		if !old[i].Equal(cur[i]) {
			return true
		}
	}
	return false
}

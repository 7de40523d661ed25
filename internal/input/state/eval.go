package state

import (
	"errors"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/input/mode"
)

// Eval examines the pending chord and runs it when it is complete.
//
// An invalid chord is never an error; it is cancelled and reset. Errors are
// returned for names with no resolver and for commands the view failed to
// run. In the latter case the chord has still been reset.
func (s *State) Eval() error {
	p := &s.pending
	switch {
	case p.Cancelled():
		return s.evalCancel()
	case p.Action() != "" && p.Motion() != "":
		return s.evalActionMotion()
	case p.Motion() != "":
		return s.evalMotion()
	case p.Action() != "":
		return s.evalAction()
	}
	s.UpdateStatus()
	return nil
}

// contextMode is the mode motions and actions resolve in. Actions taking
// motions from Normal resolve in InternalNormal.
func (s *State) contextMode() mode.Mode {
	cur := s.ctrl.Current()
	if cur.IsVisual() {
		return cur
	}
	action, motion := s.pending.Action(), s.pending.Motion()
	if (action != "" && motion != "") || (action != "" && cur == mode.Normal) {
		return mode.InternalNormal
	}
	return cur
}

// parseMotion builds the context and resolves the pending motion, if any.
// It seeds xpos from the first selection when none is cached.
func (s *State) parseMotion() (execctx.Context, error) {
	xpos, ok := s.ctrl.XPos()
	if !ok {
		xpos = 0
		if sels := s.view.Selections(); len(sels) > 0 {
			_, xpos = s.view.RowCol(sels[0].Head)
		}
		s.ctrl.SetXPos(xpos)
	}

	ctx := execctx.FromPending(&s.pending, s.contextMode(), xpos)
	if name := s.pending.Motion(); name != "" {
		fn, err := s.session.Resolvers.Motion(name)
		if err != nil {
			return ctx, err
		}
		ctx = fn(ctx)
	}
	return ctx, nil
}

// parseAction resolves the pending action against ctx. An action over a
// non-empty selection needs no motion unless it opens a digraph, so
// selections made by other means can be acted on directly.
func (s *State) parseAction(ctx execctx.Context) (execctx.Context, error) {
	fn, err := s.session.Resolvers.Action(s.pending.Action())
	if err != nil {
		return ctx, err
	}
	ctx = fn(ctx)
	if s.hasNonEmptySelection() && !ctx.IsDigraphStart {
		ctx.MotionRequired = false
	}
	return ctx, nil
}

// resolve runs parseMotion then parseAction.
func (s *State) resolve() (execctx.Context, error) {
	ctx, err := s.parseMotion()
	if err != nil {
		return ctx, err
	}
	return s.parseAction(ctx)
}

func (s *State) evalCancel() error {
	ctx, err := s.parseMotion()
	if err == nil && s.pending.Action() != "" {
		ctx, err = s.parseAction(ctx)
	}
	if err != nil {
		return err
	}

	s.log.Debug("chord cancelled", "action", s.pending.Action(), "motion", s.pending.Motion())
	if ctx.MustBlinkOnError {
		s.view.Blink()
	}
	s.pending.SetNextMode(ctx.ExitMode)
	var runErr error
	if ctx.ExitModeCommand != "" {
		runErr = s.run(execctx.Command(ctx.ExitModeCommand, nil))
	}
	err = errors.Join(runErr, s.Reset())
	s.UpdateStatus()
	return err
}

func (s *State) evalActionMotion() error {
	ctx, err := s.resolve()
	if err != nil {
		return err
	}

	if !ctx.IsDigraphStart {
		err = errors.Join(s.dispatch(ctx), s.Reset())
		s.UpdateStatus()
		return err
	}

	// The action opened a digraph that the motion did not complete.
	switch {
	case ctx.ExitMode == mode.Insert:
		s.view.Blink()
		err = s.Reset()
		err = errors.Join(err, s.ctrl.Enter(mode.Insert))
	case s.ctrl.Current() != mode.Normal:
		err = s.ctrl.Enter(mode.Normal)
		err = errors.Join(err, s.Reset())
	}
	s.UpdateStatus()
	return err
}

func (s *State) evalMotion() error {
	ctx, err := s.parseMotion()
	if err != nil {
		return err
	}
	err = errors.Join(s.run(execctx.Run(ctx)), s.Reset())
	s.UpdateStatus()
	return err
}

func (s *State) evalAction() error {
	ctx, err := s.resolve()
	if err != nil {
		return err
	}

	if ctx.IsDigraphStart {
		if ctx.ChangeModeTo == mode.Normal {
			err := s.ctrl.Enter(mode.Normal)
			s.UpdateStatus()
			return err
		}
		return nil
	}

	if ctx.ReclassifyAsMotion != "" {
		s.pending.SetAction("")
		s.pending.SetMotion(ctx.ReclassifyAsMotion)
	}
	if s.pending.Motion() != "" && s.pending.Action() == "" {
		mctx, err := s.parseMotion()
		if err != nil {
			return err
		}
		err = s.run(execctx.Run(mctx))
		s.UpdateStatus()
		return errors.Join(err, s.Reset())
	}

	if !ctx.MotionRequired {
		err = errors.Join(s.dispatch(ctx), s.Reset())
		s.UpdateStatus()
		return err
	}
	return nil
}

// dispatch sends a resolved action to the view, asking for its edits to be
// glued into one undo unit when the action wants that.
func (s *State) dispatch(ctx execctx.Context) error {
	if ctx.MarkGroupsForGluing {
		s.view.MarkUndoGroupsForGluing()
	}
	s.log.Debug("dispatch", "action", ctx.Action, "motion", ctx.Motion, "count", ctx.Count)
	return s.run(execctx.Run(ctx))
}

// Package execctx provides the resolution context passed through motion and
// action resolvers, and the invocations that carry resolved commands to the
// buffer layer.
package execctx

import (
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

// Step is a buffer-layer command produced by resolving a motion or an
// action.
type Step struct {
	Command string
	Args    Args
}

// IsZero reports whether no command was set.
func (s Step) IsZero() bool {
	return s.Command == ""
}

// Context is the per-invocation resolution context.
//
// It is built from the pending chord of a surface and passed by value to one
// motion resolver and at most one action resolver. Resolvers return an
// updated copy; the fields below the inputs are their outputs.
type Context struct {
	// Inputs.
	Action              vim.Name
	Motion              vim.Name
	Mode                mode.Mode
	Count               int
	UserCount           int
	HasUserCount        bool
	Register            rune
	UserInput           string
	LastBufferSearch    string
	LastCharacterSearch rune
	XPos                int

	// MotionStep and ActionStep are the buffer commands to run, motion first.
	MotionStep Step
	ActionStep Step

	// MotionRequired is cleared by actions that complete without a motion.
	MotionRequired bool

	// IsDigraphStart is set by actions that wait for a second key.
	IsDigraphStart bool

	// MustBlinkOnError asks for a visible no-op when the chord is cancelled.
	MustBlinkOnError bool

	// ExitMode and ExitModeCommand apply when the chord is cancelled.
	ExitMode        mode.Mode
	ExitModeCommand string

	// ChangeModeTo is a transition requested while a digraph is still open.
	ChangeModeTo mode.Mode

	// FollowUpMode is entered once the command has run. None stays put.
	FollowUpMode mode.Mode

	// MarkGroupsForGluing folds the edits of this command into one undo unit.
	MarkGroupsForGluing bool

	// Irreversible commands change state but not text; the buffer layer
	// records them as automatic history entries.
	Irreversible bool

	CanYank       bool
	YanksLinewise bool
	IsJump        bool
	AlignWithXPos bool

	// ReclassifyAsMotion is set by an action resolver to turn the pending
	// action into the named standalone motion.
	ReclassifyAsMotion vim.Name
}

// New creates a context with default outputs: a motion is required, the
// exit mode is Normal and edits are glued into one undo unit.
func New() Context {
	return Context{
		Count:               1,
		MotionRequired:      true,
		ExitMode:            mode.Normal,
		MarkGroupsForGluing: true,
	}
}

// FromPending builds a context from the chord p on a surface in mode m with
// cached column xpos.
func FromPending(p *vim.Pending, m mode.Mode, xpos int) Context {
	ctx := New()
	ctx.Action = p.Action()
	ctx.Motion = p.Motion()
	ctx.Mode = m
	ctx.Count = p.Count()
	ctx.UserCount, ctx.HasUserCount = p.UserProvidedCount()
	ctx.Register, _ = p.Register()
	ctx.UserInput = p.UserInput()
	ctx.LastBufferSearch = p.LastBufferSearch()
	ctx.LastCharacterSearch = p.LastCharacterSearch()
	ctx.XPos = xpos
	return ctx
}

// WithMode returns the context with the resolution mode set.
func (ctx Context) WithMode(m mode.Mode) Context {
	ctx.Mode = m
	return ctx
}

// WithCount returns the context with count set. Non-positive counts are
// ignored.
func (ctx Context) WithCount(count int) Context {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// WithMotionStep returns the context with the motion command set.
func (ctx Context) WithMotionStep(command string, args Args) Context {
	ctx.MotionStep = Step{Command: command, Args: args}
	return ctx
}

// WithActionStep returns the context with the action command set.
func (ctx Context) WithActionStep(command string, args Args) Context {
	ctx.ActionStep = Step{Command: command, Args: args}
	return ctx
}

// GetCount returns the count, defaulting to 1.
func (ctx Context) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// IsOperatorPending reports whether the context resolves a motion on
// behalf of an action.
func (ctx Context) IsOperatorPending() bool {
	return ctx.Mode == mode.InternalNormal
}

// Validate checks that the context describes something runnable.
func (ctx Context) Validate() error {
	if ctx.MotionStep.IsZero() && ctx.ActionStep.IsZero() {
		return ErrEmptyCommand
	}
	if !ctx.ActionStep.IsZero() && ctx.MotionRequired && ctx.MotionStep.IsZero() {
		return ErrMissingMotion
	}
	return nil
}

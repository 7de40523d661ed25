package vim

import "github.com/dshills/vicore/internal/input/mode"

// Pending is the in-progress chord of one surface.
//
// The zero value is an empty chord whose deferred mode is Normal.
// Pending is not safe for concurrent use.
type Pending struct {
	action Name
	motion Name

	actionDigits Digits
	motionDigits Digits

	register          rune
	expectingRegister bool

	userInput          string
	expectingUserInput bool

	cancel bool

	lastBufferSearch    string
	lastCharacterSearch rune

	nextMode        mode.Mode
	nextModeCommand string
}

// Action returns the pending action, or "".
func (p *Pending) Action() Name {
	return p.action
}

// SetAction stores name in the action slot. When an action is already
// pending the pair is looked up in the digraph table: an action digraph
// replaces the action, a motion digraph moves into the motion slot, and an
// undeclared pair cancels the chord without touching either slot.
// An empty name clears the slot.
func (p *Pending) SetAction(name Name) {
	if name == "" {
		p.action = ""
		return
	}
	if p.action == "" {
		p.action = name
		return
	}

	resolved, kind := ResolveDigraph(p.action, name)
	switch kind {
	case DigraphMotion:
		p.action = ""
		p.motion = resolved
	case DigraphAction:
		p.action = resolved
	default:
		p.cancel = true
	}
}

// Motion returns the pending motion, or "".
func (p *Pending) Motion() Name {
	return p.motion
}

// SetMotion stores name in the motion slot.
func (p *Pending) SetMotion(name Name) {
	p.motion = name
}

// PushActionDigit appends a count digit typed before the action.
// Non-digits are rejected.
func (p *Pending) PushActionDigit(r rune) bool {
	if !IsCountDigit(r) {
		return false
	}
	p.actionDigits = append(p.actionDigits, r)
	return true
}

// PushMotionDigit appends a count digit typed before the motion.
// Non-digits are rejected.
func (p *Pending) PushMotionDigit(r rune) bool {
	if !IsCountDigit(r) {
		return false
	}
	p.motionDigits = append(p.motionDigits, r)
	return true
}

// ActionDigits returns a copy of the action digit buffer.
func (p *Pending) ActionDigits() Digits {
	return append(Digits(nil), p.actionDigits...)
}

// MotionDigits returns a copy of the motion digit buffer.
func (p *Pending) MotionDigits() Digits {
	return append(Digits(nil), p.motionDigits...)
}

// HasDigits reports whether any count digit has been typed.
func (p *Pending) HasDigits() bool {
	return len(p.actionDigits) > 0 || len(p.motionDigits) > 0
}

// Count returns the effective count: the product of both digit buffers,
// each counting as 1 when empty.
func (p *Pending) Count() int {
	return CombineCounts(p.motionDigits.Value(), p.actionDigits.Value())
}

// UserProvidedCount returns the count and true when the user typed any
// digit, or 0 and false when no count was given.
func (p *Pending) UserProvidedCount() (int, bool) {
	if !p.HasDigits() {
		return 0, false
	}
	return p.Count(), true
}

// Register returns the selected register and whether one is set.
func (p *Pending) Register() (rune, bool) {
	return p.register, p.register != 0
}

// SetRegister selects a register. It satisfies a pending register prompt.
func (p *Pending) SetRegister(r rune) {
	p.register = r
	p.expectingRegister = false
}

// ExpectingRegister reports whether the next key names a register.
func (p *Pending) ExpectingRegister() bool {
	return p.expectingRegister
}

// ExpectRegister makes the next key a register name.
func (p *Pending) ExpectRegister() {
	p.expectingRegister = true
}

// UserInput returns the captured free-form input.
func (p *Pending) UserInput() string {
	return p.userInput
}

// SetUserInput stores captured input. It satisfies a pending input prompt.
func (p *Pending) SetUserInput(s string) {
	p.userInput = s
	p.expectingUserInput = false
}

// ExpectingUserInput reports whether free-form input is being captured.
func (p *Pending) ExpectingUserInput() bool {
	return p.expectingUserInput
}

// ExpectUserInput starts a free-form input capture.
func (p *Pending) ExpectUserInput() {
	p.expectingUserInput = true
}

// Cancelled reports whether the chord has been found invalid.
func (p *Pending) Cancelled() bool {
	return p.cancel
}

// Cancel marks the chord invalid.
func (p *Pending) Cancel() {
	p.cancel = true
}

// LastBufferSearch returns the most recent search pattern.
func (p *Pending) LastBufferSearch() string {
	return p.lastBufferSearch
}

// SetLastBufferSearch records a search pattern. It satisfies a pending
// input prompt.
func (p *Pending) SetLastBufferSearch(s string) {
	p.lastBufferSearch = s
	p.expectingUserInput = false
}

// LastCharacterSearch returns the most recent f/t target, or 0.
func (p *Pending) LastCharacterSearch() rune {
	return p.lastCharacterSearch
}

// SetLastCharacterSearch records an f/t target. It satisfies a pending
// input prompt.
func (p *Pending) SetLastCharacterSearch(r rune) {
	p.lastCharacterSearch = r
	p.expectingUserInput = false
}

// NextMode returns the mode to apply when the chord is reset.
func (p *Pending) NextMode() mode.Mode {
	if p.nextMode == mode.None {
		return mode.Normal
	}
	return p.nextMode
}

// SetNextMode defers a transition to m until the next reset.
func (p *Pending) SetNextMode(m mode.Mode) {
	p.nextMode = m
}

// NextModeCommand returns the command deferred until the next reset.
func (p *Pending) NextModeCommand() string {
	return p.nextModeCommand
}

// SetNextModeCommand defers a command until the next reset.
func (p *Pending) SetNextModeCommand(cmd string) {
	p.nextModeCommand = cmd
}

// ClearCommand drops the command slots, the register, the captured input,
// both prompts and the cancel flag. Digits and sticky searches survive.
func (p *Pending) ClearCommand() {
	p.action = ""
	p.motion = ""
	p.register = 0
	p.userInput = ""
	p.expectingRegister = false
	p.expectingUserInput = false
	p.cancel = false
}

// ClearDigits empties both digit buffers.
func (p *Pending) ClearDigits() {
	p.actionDigits = nil
	p.motionDigits = nil
}

// ClearDeferred restores the deferred transition to Normal with no command.
func (p *Pending) ClearDeferred() {
	p.nextMode = mode.Normal
	p.nextModeCommand = ""
}

// IsIdle reports whether nothing is pending: no command, no digits, no
// prompt and no cancel.
func (p *Pending) IsIdle() bool {
	return p.action == "" && p.motion == "" && !p.HasDigits() &&
		p.register == 0 && p.userInput == "" &&
		!p.expectingRegister && !p.expectingUserInput && !p.cancel
}
